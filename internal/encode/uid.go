package encode

import (
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/mrsinham/noiseforge/internal/image"
)

// uidNamespace scopes the name-based UUIDs behind generated DICOM UIDs.
var uidNamespace = uuid.MustParse("6f1c2f4e-3b57-5d0e-9a63-2b8d0c7e4a91")

type instanceUIDs struct {
	Study       string
	Series      string
	SOPInstance string
}

// newInstanceUIDs derives UIDs from the generation inputs, so regenerating the
// same image yields the same instance.
func newInstanceUIDs(seed, width, height uint32, mode image.Mode) instanceUIDs {
	key := fmt.Sprintf("seed=%d/%dx%d/%s", seed, width, height, mode)
	return instanceUIDs{
		Study:       deterministicUID("study/" + key),
		Series:      deterministicUID("series/" + key),
		SOPInstance: deterministicUID("instance/" + key),
	}
}

// deterministicUID returns a "2.25." UID: the decimal form of a name-based
// (SHA-1) UUID.
func deterministicUID(name string) string {
	u := uuid.NewSHA1(uidNamespace, []byte(name))
	return "2.25." + new(big.Int).SetBytes(u[:]).String()
}
