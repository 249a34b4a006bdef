// Copyright (c) 2025 Digote
// SPDX-License-Identifier: MIT

package pokedat

import "fmt"

// Decrypt reverses the profile's keystream transform over a whole raw
// container. The input is not modified.
func Decrypt(raw []byte, p *Profile) ([]byte, error) {
	if len(raw) < p.Header.Size {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncatedInput, len(raw), p.Header.Size)
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	switch p.Cipher.Kind {
	case CipherXorRotate:
		xorRotate(out, uint16(p.Cipher.Seed))
	case CipherXorBlock:
		xorBlocks(out, &p.Cipher)
	case CipherAddStream:
		addStream(out, &p.Cipher, false)
	}
	return out, nil
}

// Encrypt applies the profile's keystream transform over a plain
// container. Exact inverse of Decrypt for every byte sequence at least
// one header long. The input is not modified.
func Encrypt(plain []byte, p *Profile) ([]byte, error) {
	if len(plain) < p.Header.Size {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncatedInput, len(plain), p.Header.Size)
	}
	out := make([]byte, len(plain))
	copy(out, plain)
	switch p.Cipher.Kind {
	case CipherXorRotate:
		xorRotate(out, uint16(p.Cipher.Seed))
	case CipherXorBlock:
		xorBlocks(out, &p.Cipher)
	case CipherAddStream:
		addStream(out, &p.Cipher, true)
	}
	return out, nil
}

// xorRotate transforms data in place: each little-endian u16 unit is
// XORed with the key, which then rotates left by 3. XOR makes the
// transform its own inverse. A trailing odd byte is XORed with the low
// key byte.
func xorRotate(data []byte, key uint16) {
	i := 0
	for ; i+1 < len(data); i += 2 {
		u := uint16(data[i]) | uint16(data[i+1])<<8
		u ^= key
		data[i] = byte(u)
		data[i+1] = byte(u >> 8)
		key = key<<3 | key>>13
	}
	if i < len(data) {
		data[i] ^= byte(key)
	}
}

// xorBlocks runs xorRotate over fixed-size blocks, reseeding the key
// for each block from the seed and the block index.
func xorBlocks(data []byte, c *CipherParams) {
	bs := c.BlockSize
	if bs <= 0 {
		bs = len(data)
	}
	for block := 0; block*bs < len(data); block++ {
		start := block * bs
		end := start + bs
		if end > len(data) {
			end = len(data)
		}
		key := uint16(c.Seed + uint32(block)*c.Advance)
		xorRotate(data[start:end], key)
	}
}

// addStream adds (encrypt) or subtracts (decrypt) a byte keystream
// drawn from the high byte of a linear congruential generator.
func addStream(data []byte, c *CipherParams, encrypt bool) {
	state := c.Seed
	for i := range data {
		state = state*c.Mul + c.Inc
		ks := byte(state >> 24)
		if encrypt {
			data[i] += ks
		} else {
			data[i] -= ks
		}
	}
}
