package ecs_test

import "github.com/plus3/hexroads/ecs"

type Cell struct {
	Q, R int
}

type Height float64

type Link struct {
	From, To Cell
}

type Marker string

type Counter struct {
	Value int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Cell](registry)
	ecs.RegisterComponent[Height](registry)
	ecs.RegisterComponent[Link](registry)
	ecs.RegisterComponent[Marker](registry)
	ecs.RegisterComponent[Counter](registry)
	return registry
}
