package scene

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/nebula/audio"
	"github.com/pthm-cable/nebula/gesture"
	"github.com/pthm-cable/nebula/interaction"
	"github.com/pthm-cable/nebula/shapes"
	"github.com/pthm-cable/nebula/systems"
	"github.com/pthm-cable/nebula/telemetry"
	"github.com/pthm-cable/nebula/tracking"
)

type fixture struct {
	scene   *Scene
	mailbox *tracking.Mailbox
	tracker *gesture.Tracker
	rec     *audio.Recorder
}

func newFixture(t *testing.T, output *telemetry.OutputManager) *fixture {
	t.Helper()
	p := systems.DefaultParams()
	p.Count = 200
	p.ParallelThreshold = 0
	sim := systems.NewSimulation(p, shapes.NewGenerator(rand.New(rand.NewSource(1))), shapes.Sphere)
	t.Cleanup(sim.Close)

	f := &fixture{
		mailbox: tracking.NewMailbox(),
		tracker: gesture.NewTracker(gesture.DefaultClassifierParams(), 15, 0.6),
		rec:     &audio.Recorder{},
	}
	f.scene = New(Options{
		Sim:       sim,
		Mailbox:   f.mailbox,
		Session:   &interaction.Session{},
		Feedback:  f.rec,
		Collector: telemetry.NewCollector(1, 0.1),
		Output:    output,
		DT:        0.1,
	})
	return f
}

// frame feeds one detector sample through the tracker and steps the scene.
func (f *fixture) frame(hf *gesture.HandFrame, pointer interaction.Pointer) {
	f.mailbox.Publish(f.tracker.Process(hf))
	f.scene.Step(pointer)
}

// fourFingers is an open hand with the thumb tucked: four raised, no pinch.
func fourFingers() *gesture.HandFrame {
	lm := make([]gesture.Landmark, gesture.MinLandmarks)
	for i := range lm {
		lm[i] = gesture.Landmark{X: 0.5, Y: 0.6}
	}
	for _, j := range [][2]int{
		{gesture.IndexTip, gesture.IndexPIP},
		{gesture.MiddleTip, gesture.MiddlePIP},
		{gesture.RingTip, gesture.RingPIP},
		{gesture.PinkyTip, gesture.PinkyPIP},
	} {
		lm[j[1]] = gesture.Landmark{X: 0.5, Y: 0.5}
		lm[j[0]] = gesture.Landmark{X: 0.5, Y: 0.3}
	}
	lm[gesture.PinkyMCP] = gesture.Landmark{X: 0.4, Y: 0.6}
	lm[gesture.ThumbTip] = gesture.Landmark{X: 0.45, Y: 0.9}
	return &gesture.HandFrame{Landmarks: lm, Confidence: 1}
}

func TestStepBeforeStartIsInert(t *testing.T) {
	f := newFixture(t, nil)

	f.frame(fourFingers(), interaction.Pointer{Down: true})

	assert.Equal(t, uint64(0), f.scene.Sim().Ticks())
	assert.Empty(t, f.rec.Intensities())
	assert.False(t, f.scene.Select(shapes.Heart))
}

func TestSustainedGestureMorphsOnce(t *testing.T) {
	f := newFixture(t, nil)
	require.True(t, f.scene.Start())
	require.False(t, f.scene.Start())

	for i := 0; i < 9; i++ {
		f.frame(fourFingers(), interaction.Pointer{})
	}
	assert.Equal(t, shapes.Sphere, f.scene.Sim().Shape(), "nine of fifteen is not a majority")
	assert.Equal(t, 0, f.rec.Transitions())

	f.frame(fourFingers(), interaction.Pointer{})
	assert.Equal(t, shapes.Heart, f.scene.Sim().Shape())
	assert.Equal(t, 1, f.rec.Transitions())

	for i := 0; i < 5; i++ {
		f.frame(fourFingers(), interaction.Pointer{})
	}
	assert.Equal(t, 1, f.rec.Transitions(), "held gesture must not retrigger")
	assert.Equal(t, 1, f.scene.Changes())
	assert.True(t, f.scene.Session().HandFound())
	assert.Equal(t, interaction.SourceHand, f.scene.State().Source)

	sim := f.scene.Sim()
	want := shapes.NewGenerator(rand.New(rand.NewSource(1))).Generate(shapes.Heart, sim.Count())
	require.Equal(t, sim.Count(), sim.Target().Len())
	assert.Equal(t, want, sim.Target())

	// Hand gone and the pointer parked outside the field: every particle
	// closes on its Heart target each tick.
	far := interaction.Pointer{X: 1e6}
	f.frame(nil, far)
	prev := distances(sim)
	for i := 0; i < 20; i++ {
		f.scene.Step(far)
		cur := distances(sim)
		for j := range cur {
			require.LessOrEqualf(t, cur[j], prev[j]+1e-4, "particle %d moved away from its target on step %d", j, i)
		}
		prev = cur
	}
	assert.Equal(t, 1, f.rec.Transitions())
}

// distances returns each particle's distance to its target.
func distances(sim *systems.Simulation) []float64 {
	pos, tgt := sim.Cloud().Positions, sim.Target()
	d := make([]float64, sim.Count())
	for i := range d {
		v := pos.At(i).Sub(tgt.At(i))
		d[i] = math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z))
	}
	return d
}

func TestStaleMailboxDoesNotRetrigger(t *testing.T) {
	f := newFixture(t, nil)
	f.scene.Start()
	for i := 0; i < 10; i++ {
		f.frame(fourFingers(), interaction.Pointer{})
	}
	require.Equal(t, shapes.Heart, f.scene.Sim().Shape())

	// Manual pick away from Heart; the last published result still says
	// Heart but it is not new, so the manual choice stands.
	require.True(t, f.scene.Select(shapes.Saturn))
	f.scene.Step(interaction.Pointer{})
	f.scene.Step(interaction.Pointer{})

	assert.Equal(t, shapes.Saturn, f.scene.Sim().Shape())
	assert.Equal(t, 2, f.rec.Transitions())
}

func TestManualSelectSameShapeIsSilent(t *testing.T) {
	f := newFixture(t, nil)
	f.scene.Start()

	assert.False(t, f.scene.Select(shapes.Sphere))
	assert.Equal(t, 0, f.rec.Transitions())

	assert.True(t, f.scene.Select(shapes.Flower))
	assert.Equal(t, 1, f.rec.Transitions())
	assert.False(t, f.scene.Select(shapes.Archetype(99)))
}

func TestIntensityFollowsInteraction(t *testing.T) {
	f := newFixture(t, nil)
	f.scene.Start()

	f.scene.Step(interaction.Pointer{})
	f.scene.Step(interaction.Pointer{Down: true})
	f.scene.Step(interaction.Pointer{Down: true})
	f.scene.Step(interaction.Pointer{})

	assert.Equal(t, []float64{
		interaction.IntensityIdle,
		interaction.IntensityActive,
		interaction.IntensityIdle,
	}, f.rec.Intensities(), "only changes are sent")
	assert.Equal(t, interaction.IntensityIdle, f.scene.Intensity())
}

func TestHandLostFallsBackToMouse(t *testing.T) {
	f := newFixture(t, nil)
	f.scene.Start()

	f.frame(fourFingers(), interaction.Pointer{X: 10, Y: 20})
	require.Equal(t, interaction.SourceHand, f.scene.State().Source)

	f.frame(nil, interaction.Pointer{X: 10, Y: 20})
	st := f.scene.State()
	assert.Equal(t, interaction.SourceMouse, st.Source)
	assert.Equal(t, shapes.Vec3{X: 10, Y: 20}, st.Point)
	assert.False(t, f.scene.Session().HandFound())
	assert.Nil(t, f.scene.Hand())
}

func TestEventsAndTelemetryWritten(t *testing.T) {
	dir := t.TempDir()
	om, err := telemetry.NewOutputManager(dir, "test-session")
	require.NoError(t, err)

	f := newFixture(t, om)
	f.scene.Start()
	f.scene.Select(shapes.Fireworks)
	for i := 0; i < 12; i++ {
		f.scene.Step(interaction.Pointer{})
	}
	require.NoError(t, om.Close())

	events, err := os.ReadFile(filepath.Join(dir, "events.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(events), "Fireworks")
	assert.Contains(t, string(events), "manual")

	stats, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(stats), "Fireworks")
}
