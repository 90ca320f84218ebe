// SPDX-License-Identifier: MIT

// Package main demonstrates a minimal full-sync round trip: a single quad
// control mesh, subdivided to level 2, with the level-2 face center and
// corner positions printed out.
package main

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/katalvlaran/ccgsurf/element"
	"github.com/katalvlaran/ccgsurf/handle"
	"github.com/katalvlaran/ccgsurf/surf"
)

func main() {
	ss, err := surf.NewSubSurf(surf.WithSubdivLevels(2))
	if err != nil {
		log.Fatalf("new subsurf: %v", err)
	}

	// Mint vertex handles from uuid.New() the way a real mesh-authoring
	// caller would, rather than from pointer addresses or a counter.
	corners := []handle.ID{
		handle.FromUUID(uuid.New()),
		handle.FromUUID(uuid.New()),
		handle.FromUUID(uuid.New()),
		handle.FromUUID(uuid.New()),
	}
	positions := []element.Element{
		{0, 0, 0},
		{1, 0, 0},
		{1, 1, 0},
		{0, 1, 0},
	}
	faceID := handle.FromUUID(uuid.New())

	if err := ss.InitFullSync(); err != nil {
		log.Fatalf("init full sync: %v", err)
	}
	for i, id := range corners {
		if err := ss.SyncVert(id, positions[i], false); err != nil {
			log.Fatalf("sync vert %d: %v", i, err)
		}
	}
	for i := 0; i < 4; i++ {
		a, b := corners[i], corners[(i+1)%4]
		edgeID := handle.FromUUID(uuid.New())
		if err := ss.SyncEdge(edgeID, a, b, 0); err != nil {
			log.Fatalf("sync edge %d: %v", i, err)
		}
	}
	if err := ss.SyncFace(faceID, corners); err != nil {
		log.Fatalf("sync face: %v", err)
	}
	if err := ss.ProcessSync(); err != nil {
		log.Fatalf("process sync: %v", err)
	}

	f := ss.LookupFace(faceID)
	fmt.Printf("level-%d face center: %v\n", ss.L(), ss.FaceCenter(f, ss.L()))
	for i, id := range corners {
		v := ss.LookupVert(id)
		fmt.Printf("corner %d final position: %v\n", i, ss.VertCoord(v, ss.L()))
	}
}
