package yamato

// Checksum is the additive sum of the first 13 payload bytes, modulo 256.
func Checksum(p Payload) byte {
	var sum byte
	for _, b := range p[:ChecksumIndex] {
		sum += b
	}
	return sum
}

// Valid reports whether the trailing checksum byte matches the payload.
func (p Payload) Valid() bool {
	return p[ChecksumIndex] == Checksum(p)
}

func (p *Payload) seal() {
	p[ChecksumIndex] = Checksum(*p)
}
