// Package generator owns the manifest generation workflow for one session.
//
// Components:
//   - Store: mutex guarded State with a closed set of Mutations
//   - Generator: workflow actions that call the backend and the image
//     inspector, then commit mutations in a fixed order
//   - NormalizeIcons: rewrites relative icon sources against a base URL
//
// Mutations:
//
//	UPDATE_LINK, UPDATE_ERROR, UPDATE_WITH_MANIFEST, OVERRIDE_MANIFEST,
//	SET_DEFAULTS_MANIFEST, UPDATE_ICONS, ADD_ICON, ADD_ASSETS, RESET_STATES
//
// Subscribers registered with Store.Subscribe see every committed mutation
// together with a snapshot of the resulting state. They run after the store
// lock is released and may read the store again.
//
// Example Usage:
//
//	store := generator.NewStore(logger)
//	gen := generator.NewGenerator(store, manifests, inspector, catalog.Default(), logger)
//	gen.UpdateLink("example.com")
//	if err := gen.GetManifestInformation(ctx); err != nil {
//	    // state.Error already carries the message
//	}
package generator
