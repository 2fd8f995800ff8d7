package core

import "testing"

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()
	c := NewClient("c1")

	r.Register(c)
	if got := r.Get("c1"); got != c {
		t.Fatalf("expected registered client, got %v", got)
	}
	if room := r.Room("c1"); room != "" {
		t.Fatalf("fresh connection has room %q", room)
	}

	r.SetRoom("c1", "general")
	if room := r.Room("c1"); room != "general" {
		t.Fatalf("expected general, got %q", room)
	}

	r.ClearRoom("c1")
	if room := r.Room("c1"); room != "" {
		t.Fatalf("clear left room %q", room)
	}

	r.Unregister("c1")
	if r.Get("c1") != nil || r.Len() != 0 {
		t.Fatalf("unregister did not remove the connection")
	}
}

func TestRegistryUnknownIDsAreNoops(t *testing.T) {
	r := NewRegistry()

	// None of these may panic or create state.
	r.SetRoom("ghost", "general")
	r.ClearRoom("ghost")
	r.Unregister("ghost")

	if r.Get("ghost") != nil {
		t.Fatalf("unknown id produced a connection")
	}
	if room := r.Room("ghost"); room != "" {
		t.Fatalf("unknown id has room %q", room)
	}
	if r.Len() != 0 {
		t.Fatalf("no-ops created state")
	}
}

func TestRegistryDoubleRegisterKeepsFirstEntry(t *testing.T) {
	r := NewRegistry()
	c := NewClient("c1")

	r.Register(c)
	r.SetRoom("c1", "general")
	r.Register(c)

	if room := r.Room("c1"); room != "general" {
		t.Fatalf("re-register reset room to %q", room)
	}
}
