package ipset

import (
	"math/big"
	"net/netip"
)

func addrToInt(a netip.Addr) *big.Int {
	return new(big.Int).SetBytes(a.AsSlice())
}

func intToAddr(v *big.Int, is4 bool) netip.Addr {
	b := make([]byte, 16)
	if is4 {
		b = b[:4]
	}
	v.FillBytes(b)
	a, _ := netip.AddrFromSlice(b)
	return a
}

func familyMax(is4 bool) *big.Int {
	bits := uint(128)
	if is4 {
		bits = 32
	}
	max := new(big.Int).Lsh(big.NewInt(1), bits)
	return max.Sub(max, big.NewInt(1))
}

// addOffset moves a by n addresses, saturating at the bounds of its
// family.
func addOffset(a netip.Addr, n int64) netip.Addr {
	v := new(big.Int).Add(addrToInt(a), big.NewInt(n))
	if v.Sign() < 0 {
		v.SetInt64(0)
	}
	if max := familyMax(a.Is4()); v.Cmp(max) > 0 {
		v = max
	}
	return intToAddr(v, a.Is4())
}

// distance returns the number of addresses in [from, to).
func distance(from, to netip.Addr) *big.Int {
	return new(big.Int).Sub(addrToInt(to), addrToInt(from))
}
