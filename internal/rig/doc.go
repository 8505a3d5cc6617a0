// Package rig applies critically damped springs to transform hierarchies.
//
// A [Chain] stacks N segment nodes, each the parent of the next, and drives
// them from a shared [wind.Wind]. Segments near the anchor are stiffer and
// feel less wind; each segment's applied rotation is clamped to MaxBend/N per
// axis so the total bend of the stem does not grow with N.
//
// A [Sway] drives a single root node from the pointer and exposes [Sway.Kick]
// for one-shot bounces.
//
// Both are advanced explicitly by the owner of the scene, once per frame:
//
//	w := wind.Default()
//	chain, _ := rig.NewChain(w, rig.DefaultChainConfig(), flower)
//	for dt := range frames {
//	    w.Advance(dt)
//	    chain.Update(dt)
//	}
package rig
