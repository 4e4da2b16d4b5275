package ospfs_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"github.com/ospfsdev/ospfs/ospfs"
)

// TestBlockDeviceFromStream_RoundTrips drives the block device through an
// io.ReadWriteSeeker backed by an in-memory byte slice, the same way a
// disk image would be loaded, instead of constructing it directly.
func TestBlockDeviceFromStream_RoundTrips(t *testing.T) {
	const totalBlocks = 4
	image := make([]byte, totalBlocks*ospfs.BlockSize)
	image[0] = 0xAB
	image[ospfs.BlockSize+1] = 0xCD

	stream := bytesextra.NewReadWriteSeeker(image)
	dev, err := ospfs.NewBlockDeviceFromStream(stream, totalBlocks)
	require.NoError(t, err)

	assert.Equal(t, uint32(totalBlocks), dev.TotalBlocks())
	assert.Equal(t, byte(0xAB), dev.Block(0)[0])
	assert.Equal(t, byte(0xCD), dev.Block(1)[1])

	dev.Block(2)[5] = 0xEF

	var out bytes.Buffer
	require.NoError(t, dev.Flush(&out))
	assert.Equal(t, byte(0xEF), out.Bytes()[2*ospfs.BlockSize+5])
}
