package afpacket

import (
	"fmt"
)

// recomputeSize derives frame size, block size and block count for a
// TPACKET ring of roughly ringBufferSizeMB. Frames are aligned to
// TPACKET_ALIGNMENT and blocks are multiples of both the page size and
// the frame size.
func recomputeSize(ringBufferSizeMB, snapLen, pageSize int) (frameSize, blockSize, numBlocks int, err error) {
	const tpacketAlignment = 16 // TPACKET_ALIGNMENT for AF_PACKET
	const tpacketHdrLen = 52    // TPACKET2_HDRLEN or TPACKET3_HDRLEN (approximate)

	if ringBufferSizeMB <= 0 {
		return 0, 0, 0, fmt.Errorf("buffer size must be positive, got %d", ringBufferSizeMB)
	}
	if snapLen <= 0 {
		return 0, 0, 0, fmt.Errorf("snap length must be positive, got %d", snapLen)
	}
	if pageSize <= 0 || pageSize%tpacketAlignment != 0 {
		return 0, 0, 0, fmt.Errorf("page size must be positive and multiple of %d, got %d", tpacketAlignment, pageSize)
	}

	targetBytes := ringBufferSizeMB * 1024 * 1024

	rawFrameSize := tpacketHdrLen + snapLen
	frameSize = ((rawFrameSize + tpacketAlignment - 1) / tpacketAlignment) * tpacketAlignment

	const maxBlockSize = 4 * 1024 * 1024

	blockSize = lcm(pageSize, frameSize)
	if blockSize > maxBlockSize {
		// Page-sized frames keep the block a multiple of both.
		frameSize = ((frameSize + pageSize - 1) / pageSize) * pageSize
		blockSize = frameSize
		if frameSize < maxBlockSize {
			blockSize = (maxBlockSize / frameSize) * frameSize
		}
	}

	numBlocks = targetBytes / blockSize
	if numBlocks < 1 {
		numBlocks = 1
	}

	return frameSize, blockSize, numBlocks, nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return (a * b) / gcd(a, b)
}
