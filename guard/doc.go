// Package guard pairs the acquisition of a process-global resource with
// its release.
//
// A guard is created by its constructor, which performs the acquisition,
// and released by Close, which is safe to defer right after a successful
// construction:
//
//	g, err := guard.NewThreadPoolGuard(tp, false, guard.DefaultMaxJobsTotal)
//	if err != nil {
//	    return err
//	}
//	defer g.Close()
//
// A constructor that fails returns a nil guard and leaves nothing behind
// that would need a Close: a thread pool that was initialized but could not
// be configured is shut down again before the error is returned.
//
// Close runs the release step exactly once. Later calls return nil.
//
// All guards report their progress through State:
//
//	Uninitialized -> Acquiring -> Acquired -> Releasing -> Released
package guard
