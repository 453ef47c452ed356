package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/robokit/simenv/internal/control"
	"github.com/robokit/simenv/internal/kinworld"
	"github.com/robokit/simenv/internal/logging"
	"github.com/robokit/simenv/internal/record"
	"github.com/robokit/simenv/internal/scene"
	"github.com/robokit/simenv/internal/simenv"
	"github.com/robokit/simenv/internal/stream"
	"github.com/robokit/simenv/internal/viz"
)

var (
	dataDir  string
	logLevel string
	dt       float64
	steps    int
	save     bool
	addr     string
	interval time.Duration
	kp       float64
	ki       float64
	kd       float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "simenv",
		Short: "articulated robot simulation environment",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".simenv", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	runCmd := &cobra.Command{
		Use:   "run [scene.yaml]",
		Short: "run a scene headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runScene,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	runCmd.Flags().IntVar(&steps, "steps", 1000, "physics steps")
	runCmd.Flags().BoolVar(&save, "save", false, "record trajectories")
	runCmd.Flags().Float64Var(&kp, "kp", 10.0, "position controller kp")
	runCmd.Flags().Float64Var(&ki, "ki", 0.0, "position controller ki")
	runCmd.Flags().Float64Var(&kd, "kd", 0.0, "position controller kd")

	viewCmd := &cobra.Command{
		Use:   "view [scene.yaml]",
		Short: "interactive terminal view",
		Args:  cobra.ExactArgs(1),
		RunE:  viewScene,
	}
	viewCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")

	serveCmd := &cobra.Command{
		Use:   "serve [scene.yaml]",
		Short: "stream a scene over websocket",
		Args:  cobra.ExactArgs(1),
		RunE:  serveScene,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().DurationVar(&interval, "interval", stream.DefaultInterval, "broadcast interval")
	serveCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")

	collideCmd := &cobra.Command{
		Use:   "collide [scene.yaml]",
		Short: "report contacts in the initial configuration",
		Args:  cobra.ExactArgs(1),
		RunE:  collideScene,
	}

	infoCmd := &cobra.Command{
		Use:   "info [scene.yaml]",
		Short: "describe a scene",
		Args:  cobra.ExactArgs(1),
		RunE:  infoScene,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	rootCmd.AddCommand(runCmd, viewCmd, serveCmd, collideCmd, infoCmd, runsCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() simenv.Logger {
	level := simenv.LevelInfo
	switch logLevel {
	case "debug":
		level = simenv.LevelDebug
	case "warn":
		level = simenv.LevelWarn
	case "error":
		level = simenv.LevelError
	}
	return logging.New(os.Stderr, level)
}

func loadWorld(path string, opts ...kinworld.Option) (*kinworld.World, error) {
	w := kinworld.New(newLogger(), opts...)
	if err := w.LoadWorld(path); err != nil {
		return nil, err
	}
	// The flag wins over the scene's timestep.
	if dt > 0 {
		w.SetPhysicsTimeStep(dt)
	}
	return w, nil
}

func runScene(cmd *cobra.Command, args []string) error {
	w, err := loadWorld(args[0])
	if err != nil {
		return err
	}

	// Hold each robot at its starting configuration so the run exercises
	// the control loop even without a user-provided program.
	for _, r := range w.GetRobots() {
		pc := control.NewPosition(r.NumDOFs(), kp, ki, kd)
		pc.SetTarget(r.DOFPositions(r.DOFIndices()))
		r.SetController(pc.Func())
	}

	var rec *record.Recorder
	if save {
		rec = record.NewRecorder(w)
	}

	stepDt := w.PhysicsTimeStep()
	for i := 0; i < steps; i++ {
		w.StepPhysics(1)
		if rec != nil {
			rec.Sample(float64(i+1) * stepDt)
		}
	}

	if rec != nil {
		store := record.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		runID, err := store.Save(w.Name(), stepDt, steps, rec)
		if err != nil {
			return err
		}
		fmt.Printf("saved run %s\n", runID)
	}
	fmt.Printf("stepped %d x %.4fs\n", steps, stepDt)
	return nil
}

func viewScene(cmd *cobra.Command, args []string) error {
	viewer := viz.NewViewer()
	w, err := loadWorld(args[0], kinworld.WithViewer(viewer))
	if err != nil {
		return err
	}
	return viz.Run(w, viewer)
}

func serveScene(cmd *cobra.Command, args []string) error {
	w, err := loadWorld(args[0])
	if err != nil {
		return err
	}

	srv := stream.NewServer(w, w.Logger(), interval)
	w.SetViewer(srv)
	for _, r := range w.GetRobots() {
		m := control.NewManual(r.NumDOFs())
		r.SetController(m.Func())
		srv.Teleop(r.Name(), m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go srv.Run(ctx)

	mux := http.NewServeMux()
	mux.Handle("/ws", srv.Handler())
	httpSrv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
	}()

	fmt.Printf("streaming %q on %s/ws\n", w.Name(), addr)
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func collideScene(cmd *cobra.Command, args []string) error {
	w, err := loadWorld(args[0])
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BODY A\tLINK A\tBODY B\tLINK B\tPOINT")
	seen := make(map[string]bool)
	total := 0
	for _, o := range w.GetObjects(true) {
		_, contacts := o.CheckCollision()
		for _, c := range contacts {
			// Each pair shows up once per direction; keep the first.
			key := c.ObjectB + "/" + c.LinkB + "|" + c.ObjectA + "/" + c.LinkA
			if seen[key] {
				continue
			}
			seen[c.ObjectA+"/"+c.LinkA+"|"+c.ObjectB+"/"+c.LinkB] = true
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t(%.3f %.3f %.3f)\n",
				c.ObjectA, c.LinkA, c.ObjectB, c.LinkB,
				c.Point.X(), c.Point.Y(), c.Point.Z())
			total++
		}
	}
	tw.Flush()
	fmt.Printf("%d contact(s)\n", total)
	return nil
}

func infoScene(cmd *cobra.Command, args []string) error {
	s, err := scene.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scene %q, timestep %.4fs\n\n", s.Name, s.PhysicsTimestep)
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tSTATIC\tLINKS\tJOINTS\tDOFS")
	describe := func(spec scene.ObjectSpec, kind string) {
		base := 6
		if spec.Static {
			base = 0
		}
		fmt.Fprintf(tw, "%s\t%s\t%v\t%d\t%d\t%d\n",
			spec.Name, kind, spec.Static, len(spec.Links), len(spec.Joints), base+len(spec.Joints))
	}
	for _, spec := range s.Objects {
		describe(spec, "object")
	}
	for _, spec := range s.Robots {
		describe(spec, "robot")
	}
	return tw.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := record.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSCENE\tSTEPS\tDT\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.4f\t%s\n",
			r.ID, r.Scene, r.Steps, r.Dt, r.Timestamp.Format(time.RFC3339))
	}
	return tw.Flush()
}
