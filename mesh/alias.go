package mesh

import "github.com/polyforge/remesh/types"

// Local aliases so the rest of the package can write VertexID instead of
// types.VertexID; both names refer to the exact same type.
type (
	VertexID = types.VertexID
	EdgeID   = types.EdgeID
	FaceID   = types.FaceID
	LoopID   = types.LoopID
	Vec3     = types.Vec3
	HeadFlag = types.HeadFlag
	VertFlag = types.VertFlag
)

const (
	NilVertex = types.NilVertex
	NilEdge   = types.NilEdge
	NilFace   = types.NilFace
	NilLoop   = types.NilLoop
)
