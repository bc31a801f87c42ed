package ecs

// System is a unit of per-frame behavior. Systems are usually pointers to
// structs whose Query and Singleton fields are wired by the Scheduler on
// registration; any other fields are free-form state kept between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
