package backend

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/framehost"
)

func withRegistry(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := factories
	factories = make(map[string]Factory)
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		factories = saved
		registryMu.Unlock()
	})
}

// fakeBackend satisfies framehost.Backend; its methods are never called.
type fakeBackend struct{ framehost.Backend }

func headlessFactory() (framehost.Backend, error) {
	return fakeBackend{}, nil
}

func TestRegisterOpen(t *testing.T) {
	withRegistry(t)
	Register("b", headlessFactory)
	Register("a", headlessFactory)

	if got := Available(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Available() = %v", got)
	}
	if !IsRegistered("a") || IsRegistered("c") {
		t.Error("IsRegistered mismatch")
	}
	b, err := Open("a")
	if err != nil || b == nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := Open("c"); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Open(c) = %v, want ErrBackendNotAvailable", err)
	}

	Unregister("a")
	if IsRegistered("a") {
		t.Error("Unregister kept the backend")
	}
}

func TestDefaultPriority(t *testing.T) {
	withRegistry(t)
	boom := errors.New("no vulkan loader")
	Register(Vulkan, func() (framehost.Backend, error) { return nil, boom })
	Register(Headless, headlessFactory)

	b, name, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if name != Headless || b == nil {
		t.Errorf("Default() = %q, want headless fallback", name)
	}
}

func TestDefaultFallsBackToAny(t *testing.T) {
	withRegistry(t)
	Register("custom", headlessFactory)
	if _, name, err := Default(); err != nil || name != "custom" {
		t.Errorf("Default() = %q, %v", name, err)
	}
}

func TestDefaultNone(t *testing.T) {
	withRegistry(t)
	boom := errors.New("broken")
	Register(Vulkan, func() (framehost.Backend, error) { return nil, boom })

	_, _, err := Default()
	if !errors.Is(err, ErrBackendNotAvailable) || !errors.Is(err, boom) {
		t.Errorf("Default() err = %v", err)
	}
}
