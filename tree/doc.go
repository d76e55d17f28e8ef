// Package tree provides an in-memory rendered component tree and the tag and
// type queries that scry waits poll against it.
//
// A Node is either a host node, identified by its Tag (e.g. "div"), or a
// composite node whose Component value carries its type. Queries walk the
// tree in document order (pre-order), so the first result is the node a
// reader would meet first.
//
// Renderers that update the tree from another goroutine publish snapshots
// through a Live, whose ByTag and ByType methods have the shapes of
// scry.TagQuery and scry.TypeQuery:
//
//	live := tree.NewLive()
//	go render(live)
//
//	node, err := scry.WaitForTag(ctx, frames, (*tree.Live).ByTag, live, "button",
//	    scry.Attempts(10),
//	).Await(ctx)
//
// Fixture trees can be decoded from YAML or JSON with Parse.
package tree
