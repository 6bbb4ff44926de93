package decoder

// extractPayload returns the bytes after the last decoded header.
// The slice aliases the frame; it is empty, not an error, when nothing is left.
func extractPayload(c *cursor, off int) []byte {
	return c.tail(off)
}
