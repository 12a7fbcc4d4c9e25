// Command collidebench runs the 2D detection pipeline over a scene for a
// number of steps and reports contact and timing statistics. Scenes come
// from a YAML file or, when none is given, a built-in grid of bodies flying
// toward each other over a static floor.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/gekko3d/collide"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type (
	world2 = collide.World2[float64, uuid.UUID]
	body2  = collide.RigidBody2[float64]
	pair2  = collide.Pair[uuid.UUID]
	event2 = collide.ContactEvent2[float64, uuid.UUID]
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		scenePath = flag.String("scene", "", "YAML scene file, empty runs the built-in scene")
		steps     = flag.Int("steps", 120, "number of simulation steps")
		dt        = flag.Float64("dt", 1.0/60.0, "step length in seconds")
		broadName = flag.String("broad", "dbvt", "broad phase: brute, sap, dbvt or hash")
		workers   = flag.Int("workers", runtime.NumCPU(), "narrow phase worker count")
		gravity   = flag.Float64("gravity", 0, "downward acceleration applied each step")
		debug     = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	log := collide.NewDefaultLogger("collidebench", *debug)

	bodies, err := loadScene(*scenePath)
	if err != nil {
		return err
	}
	broad, err := pickBroad(*broadName)
	if err != nil {
		return err
	}
	if *workers < 1 {
		*workers = 1
	}

	world := collide.NewWorld2[float64, uuid.UUID]()
	states := make(map[uuid.UUID]*body2, len(bodies))
	for _, b := range bodies {
		world.Add(b.id, b.shape, b.state.Pose)
		states[b.id] = &b.state
	}
	lookup := func(id uuid.UUID) (*body2, bool) {
		s, ok := states[id]
		return s, ok
	}

	// one detector per worker, detector state is per goroutine
	gjks := make([]*collide.GJK2[float64], *workers)
	for i := range gjks {
		gjks[i] = collide.NewGJK2[float64]()
		gjks[i].Log = log
	}

	log.Infof("running %d steps over %d bodies, broad=%s workers=%d", *steps, len(bodies), *broadName, *workers)

	totalContacts := 0
	start := time.Now()
	for step := 0; step < *steps; step++ {
		for _, b := range bodies {
			world.SetPose(b.id, b.state.Pose)
			if b.shape.Mode == collide.Continuous {
				world.SetNextPose(b.id, b.state.Velocity.Apply(b.state.Pose, *dt))
			}
		}

		pairs := collide.BroadCollide2(broad, world, log)
		events := narrowParallel(gjks, world, pairs, log)
		collide.ResolveContacts2(events, lookup, log)

		for _, b := range bodies {
			if b.state.Mass.InverseMass() == 0 {
				continue
			}
			b.state.Velocity.Linear.Y -= *gravity * *dt
			b.state.Pose = b.state.Velocity.Apply(b.state.Pose, *dt)
		}

		totalContacts += len(events)
		if len(events) > 0 {
			log.Debugf("step %d: %d candidate pairs, %d contacts", step, len(pairs), len(events))
			for _, ev := range events {
				log.Debugf("  %s <-> %s depth=%.4f normal=(%.3f, %.3f) toi=%.3f",
					short(ev.Bodies.A), short(ev.Bodies.B),
					ev.Contact.PenetrationDepth, ev.Contact.Normal.X, ev.Contact.Normal.Y,
					ev.Contact.TimeOfImpact)
			}
		}
	}
	elapsed := time.Since(start)

	log.Infof("done in %v, %d contacts total, %.1f us/step", elapsed, totalContacts,
		float64(elapsed.Microseconds())/float64(*steps))
	mean, queries := meanIterations(gjks)
	log.Infof("mean narrow phase iterations: %.2f over %d queries", mean, queries)
	if d, ok := broad.(*collide.DBVTBroad2[float64, uuid.UUID]); ok {
		log.Infof("tree height %d over %d proxies", d.Tree().Height(), d.Tree().Len())
	}
	return nil
}

// narrowParallel fans candidate pairs out across the workers. Pairs are
// independent and the world only sees reads during the phase, so splitting
// into contiguous chunks keeps the merged event order deterministic.
func narrowParallel(gjks []*collide.GJK2[float64], world *world2, pairs []pair2, log collide.Logger) []event2 {
	workers := len(gjks)
	if workers == 1 || len(pairs) < 2*workers {
		return collide.NarrowCollide2(gjks[0], world, pairs, log)
	}
	chunk := (len(pairs) + workers - 1) / workers
	results := make([][]event2, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= len(pairs) {
			break
		}
		hi := min(lo+chunk, len(pairs))
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			results[w] = collide.NarrowCollide2(gjks[w], world, pairs[lo:hi], log)
		}(w, lo, hi)
	}
	wg.Wait()
	var events []event2
	for _, r := range results {
		events = append(events, r...)
	}
	return events
}

func meanIterations(gjks []*collide.GJK2[float64]) (float64, uint64) {
	var sum float64
	var n uint64
	for _, g := range gjks {
		stats := g.Iterations()
		sum += stats.Average() * float64(stats.Count())
		n += uint64(stats.Count())
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}

func pickBroad(name string) (collide.BroadPhase2[float64, uuid.UUID], error) {
	switch name {
	case "brute":
		return collide.BruteForce2[float64, uuid.UUID]{}, nil
	case "sap":
		return collide.NewSweepAndPrune2[float64, uuid.UUID](), nil
	case "dbvt":
		return collide.NewDBVTBroad2[float64, uuid.UUID](0), nil
	case "hash":
		return collide.NewSpatialHash2[float64, uuid.UUID](2), nil
	default:
		return nil, fmt.Errorf("unknown broad phase %q, want brute, sap, dbvt or hash", name)
	}
}

func short(id uuid.UUID) string {
	return id.String()[:8]
}

// benchBody couples a body's collision shape with its physical state.
type benchBody struct {
	id    uuid.UUID
	shape *collide.CollisionShape2[float64]
	state body2
}

type sceneFile struct {
	Bodies []sceneBody `yaml:"bodies"`
}

type sceneBody struct {
	ID         string     `yaml:"id"`
	Shape      sceneShape `yaml:"shape"`
	Position   []float64  `yaml:"position"`
	Rotation   float64    `yaml:"rotation"`
	Velocity   []float64  `yaml:"velocity"`
	Angular    float64    `yaml:"angular"`
	Material   string     `yaml:"material"`
	Mass       float64    `yaml:"mass"`
	Static     bool       `yaml:"static"`
	Continuous bool       `yaml:"continuous"`
}

type sceneShape struct {
	Kind     string      `yaml:"kind"`
	Radius   float64     `yaml:"radius"`
	Dim      []float64   `yaml:"dim"`
	Vertices [][]float64 `yaml:"vertices"`
}

func loadScene(path string) ([]*benchBody, error) {
	if path == "" {
		return builtinScene(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	var scene sceneFile
	if err := yaml.Unmarshal(raw, &scene); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	if len(scene.Bodies) == 0 {
		return nil, fmt.Errorf("scene %s has no bodies", path)
	}
	bodies := make([]*benchBody, 0, len(scene.Bodies))
	for i := range scene.Bodies {
		b, err := buildBody(&scene.Bodies[i])
		if err != nil {
			return nil, fmt.Errorf("scene body %d: %w", i, err)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

func buildBody(sb *sceneBody) (*benchBody, error) {
	id := uuid.New()
	if sb.ID != "" {
		parsed, err := uuid.Parse(sb.ID)
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", sb.ID, err)
		}
		id = parsed
	}

	prim, err := buildShape(&sb.Shape)
	if err != nil {
		return nil, err
	}
	mode := collide.Discrete
	if sb.Continuous {
		mode = collide.Continuous
	}
	shape := collide.NewCollisionShape2(collide.FullResolution, mode, prim)

	material, err := materialByName(sb.Material)
	if err != nil {
		return nil, err
	}
	mass, err := massFor(shape, material, sb)
	if err != nil {
		return nil, err
	}

	position, err := vec2Of(sb.Position, "position")
	if err != nil {
		return nil, err
	}
	velocity, err := vec2Of(sb.Velocity, "velocity")
	if err != nil {
		return nil, err
	}

	return &benchBody{
		id:    id,
		shape: shape,
		state: body2{
			Active:   true,
			Pose:     collide.NewPose2(position, sb.Rotation),
			Velocity: collide.Velocity2[float64]{Linear: velocity, Angular: sb.Angular},
			Mass:     mass,
			Material: material,
		},
	}, nil
}

func buildShape(ss *sceneShape) (collide.Shape2[float64], error) {
	switch ss.Kind {
	case "circle":
		return collide.NewCircle(ss.Radius)
	case "rectangle":
		if len(ss.Dim) != 2 {
			return nil, fmt.Errorf("rectangle wants dim [x, y], got %v", ss.Dim)
		}
		return collide.NewRectangle(ss.Dim[0], ss.Dim[1])
	case "polygon":
		vertices := make([]collide.Vec2[float64], 0, len(ss.Vertices))
		for _, v := range ss.Vertices {
			if len(v) != 2 {
				return nil, fmt.Errorf("polygon vertex wants [x, y], got %v", v)
			}
			vertices = append(vertices, collide.V2(v[0], v[1]))
		}
		return collide.NewConvexPolygon(vertices)
	default:
		return nil, fmt.Errorf("unknown shape kind %q, want circle, rectangle or polygon", ss.Kind)
	}
}

func materialByName(name string) (collide.Material, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return collide.DefaultMaterial, nil
	case "rock":
		return collide.Rock, nil
	case "wood":
		return collide.Wood, nil
	case "metal":
		return collide.Metal, nil
	case "bouncy-ball":
		return collide.BouncyBall, nil
	case "super-ball":
		return collide.SuperBall, nil
	case "pillow":
		return collide.Pillow, nil
	case "static":
		return collide.Static, nil
	default:
		return collide.Material{}, fmt.Errorf("unknown material %q", name)
	}
}

// massFor derives mass from the shape's volume, rescaled when the scene
// pins an explicit mass, or infinite for static bodies.
func massFor(shape *collide.CollisionShape2[float64], material collide.Material, sb *sceneBody) (collide.Mass2[float64], error) {
	if sb.Static {
		return collide.InfiniteMass2[float64](), nil
	}
	derived, err := collide.MassFromCollisionShape2(shape, material)
	if err != nil {
		return collide.Mass2[float64]{}, err
	}
	if sb.Mass > 0 && derived.Mass() > 0 {
		scale := sb.Mass / derived.Mass()
		return collide.NewMass2(sb.Mass, derived.Inertia()*scale), nil
	}
	return derived, nil
}

func vec2Of(v []float64, what string) (collide.Vec2[float64], error) {
	switch len(v) {
	case 0:
		return collide.Vec2[float64]{}, nil
	case 2:
		return collide.V2(v[0], v[1]), nil
	default:
		return collide.Vec2[float64]{}, fmt.Errorf("%s wants [x, y], got %v", what, v)
	}
}

// builtinScene is a grid of circles converging on its own center over a
// static floor, enough bodies to make every broad phase earn its keep.
func builtinScene() []*benchBody {
	const side = 8
	materials := []collide.Material{collide.Rock, collide.Wood, collide.Metal, collide.BouncyBall}

	var bodies []*benchBody
	for row := 0; row < side; row++ {
		for col := 0; col < side; col++ {
			circle, _ := collide.NewCircle(0.4)
			shape := collide.NewCollisionShape2[float64](collide.FullResolution, collide.Discrete, circle)
			material := materials[(row*side+col)%len(materials)]
			mass, _ := collide.MassFromCollisionShape2(shape, material)

			position := collide.V2(
				(float64(col)-float64(side-1)/2)*1.5,
				(float64(row)-float64(side-1)/2)*1.5+6,
			)
			speed := 2.0
			distance := position.Sub(collide.V2(0.0, 6.0))
			velocity := collide.Vec2[float64]{}
			if l := distance.Len(); l > 0 {
				velocity = distance.Mul(-speed / l)
			}

			bodies = append(bodies, &benchBody{
				id:    uuid.New(),
				shape: shape,
				state: body2{
					Active:   true,
					Pose:     collide.NewPose2(position, 0),
					Velocity: collide.Velocity2[float64]{Linear: velocity},
					Mass:     mass,
					Material: material,
				},
			})
		}
	}

	floor, _ := collide.NewRectangle(30.0, 1.0)
	floorShape := collide.NewCollisionShape2[float64](collide.FullResolution, collide.Discrete, floor)
	bodies = append(bodies, &benchBody{
		id:    uuid.New(),
		shape: floorShape,
		state: body2{
			Active:   true,
			Pose:     collide.NewPose2(collide.V2(0.0, -2.0), 0),
			Mass:     collide.InfiniteMass2[float64](),
			Material: collide.Static,
		},
	})

	// one fast mover to exercise the swept path
	bullet, _ := collide.NewCircle(0.2)
	bulletShape := collide.NewCollisionShape2[float64](collide.FullResolution, collide.Continuous, bullet)
	bulletMass, _ := collide.MassFromCollisionShape2(bulletShape, collide.Metal)
	bodies = append(bodies, &benchBody{
		id:    uuid.New(),
		shape: bulletShape,
		state: body2{
			Active:   true,
			Pose:     collide.NewPose2(collide.V2(-20.0, 6.0), 0),
			Velocity: collide.Velocity2[float64]{Linear: collide.V2(40.0, 0.0)},
			Mass:     bulletMass,
			Material: collide.Metal,
		},
	})
	return bodies
}
