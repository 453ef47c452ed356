package kinworld

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestKinworld(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Kinworld Suite")
}
