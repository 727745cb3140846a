package ability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOwner struct{}

func (stubOwner) ID() string        { return "dragon" }
func (stubOwner) IsAlive() bool     { return true }
func (stubOwner) CurrentTick() Tick { return 0 }

func TestManager_PollingSkipsRegistryLookups(t *testing.T) {
	reg := NewRegistry()
	bite := reg.MustRegister("bite", MustNewType(&TypeConfig{
		Track:   MustTrack(Active(3)),
		Factory: func(Owner) Hooks { return BaseHooks{} },
	}))
	mgr := NewManager(&ManagerConfig{Owner: stubOwner{}, Registry: reg})
	require.True(t, mgr.TryUseAbility(bite))

	// Hold the registry exclusively; repeat polls must not need it
	reg.mu.Lock()
	defer reg.mu.Unlock()

	done := make(chan bool, 1)
	go func() { done <- mgr.TryUseAbility(bite) }()

	select {
	case used := <-done:
		assert.False(t, used)
	case <-time.After(time.Second):
		t.Fatal("TryUseAbility waited on the registry")
	}
}
