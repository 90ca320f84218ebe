// SPDX-License-Identifier: MIT

// Package handle implements the open-chained hash table that maps an
// opaque caller-supplied handle to an entity pointer.
//
// It underlies the three catalogs kept by package surf (vertices, edges,
// faces): one handle.Map per entity kind. Bucket counts follow a fixed
// prime-ish growth sequence and the table grows whenever load exceeds 3
// entries per bucket, rehashing every chain in one pass.
//
// Map never removes an entry on a colliding Insert — colliding handles are
// simply unusual caller error and the existing entry should be unlinked
// first via Remove. Lookup always returns the most recently inserted entry
// for a given ID.
package handle
