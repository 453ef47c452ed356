package kinworld

import "github.com/robokit/simenv/internal/simenv"

// Link is one rigid segment of an object. Parent/child joints are stored
// as indices into the owning object's joint slice.
type Link struct {
	entityCore
	obj      *Object
	index    int
	parents  []int
	children []int
	shape    shape
}

var _ simenv.Link = (*Link)(nil)

func (l *Link) Object() simenv.Object { return l.obj.self }

func (l *Link) ParentJoints() []simenv.Joint { return l.obj.jointHandles(l.parents) }
func (l *Link) ChildJoints() []simenv.Joint  { return l.obj.jointHandles(l.children) }

func (l *Link) CheckCollision() (bool, []simenv.Contact) {
	if l.world == nil {
		return false, nil
	}
	return l.world.linkSelfCheck(l)
}

func (l *Link) CheckCollisionWithLinks(others []simenv.Link) (bool, []simenv.Contact) {
	if l.world == nil {
		return false, nil
	}
	return l.world.linkVsLinks(l, others)
}

func (l *Link) CheckCollisionWithObjects(others []simenv.Object) (bool, []simenv.Contact) {
	if l.world == nil {
		return false, nil
	}
	return l.world.linkVsObjects(l, others)
}

func (l *Link) worldShape() worldShape {
	return l.shape.placed(l.tf)
}
