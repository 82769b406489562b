package main

import (
	"slices"
	"testing"
)

func TestReleaseStackRunsNewestFirst(t *testing.T) {
	var (
		s     releaseStack
		order []string
	)
	hook := s.run
	s.push(func() { order = append(order, "drain") })
	s.push(func() { order = append(order, "mesh") })
	s.push(func() { order = append(order, "target") })

	// The hook is bound before the pushes, as it is at startup.
	hook()

	if want := []string{"target", "mesh", "drain"}; !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}

	hook()
	if len(order) != 3 {
		t.Errorf("second run repeated cleanups: %v", order)
	}
}

func TestReleaseStackEmpty(t *testing.T) {
	var s releaseStack
	s.run()
}
