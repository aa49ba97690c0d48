package tor

import (
	"encoding/base32"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/sha3"
)

const (
	// OnionV3Length is the length of a v3 address without the suffix.
	OnionV3Length = 56

	// OnionV3TotalLength includes the ".onion" suffix.
	OnionV3TotalLength = 62

	// OnionV3Version is the trailing version byte of a v3 address.
	OnionV3Version = 0x03

	// OnionSuffix ends every onion host name.
	OnionSuffix = ".onion"
)

var (
	onionV3Pattern = regexp.MustCompile(`^[a-z2-7]{56}\.onion$`)
	onionV2Pattern = regexp.MustCompile(`^[a-z2-7]{16}\.onion$`)
)

// checksumPrefix is the constant prefix of the v3 checksum input.
var checksumPrefix = []byte(".onion checksum")

// IsOnionHost reports whether host (optionally with a port) is an onion
// service name. Subdomains such as "www.<addr>.onion" count.
func IsOnionHost(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(stripPort(host), "."))
	return strings.HasSuffix(host, OnionSuffix)
}

// ServiceAddress returns the "<56 chars>.onion" part of an onion host,
// dropping subdomains and port.
func ServiceAddress(host string) string {
	host = strings.ToLower(strings.TrimSuffix(stripPort(host), "."))
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return host
	}
	return labels[len(labels)-2] + OnionSuffix
}

// ValidateOnionHost checks an onion host name. v3 addresses must carry a
// valid checksum; v2 addresses are rejected with ErrV2OnionAddress.
func ValidateOnionHost(host string) error {
	addr := ServiceAddress(host)
	switch {
	case onionV2Pattern.MatchString(addr):
		return fmt.Errorf("%w: %s", ErrV2OnionAddress, addr)
	case !IsValidV3Address(addr):
		return fmt.Errorf("%w: %s", ErrInvalidOnionAddress, addr)
	default:
		return nil
	}
}

// IsValidV3Address reports whether address is a v3 onion address with a
// correct version byte and checksum. Case is ignored.
func IsValidV3Address(address string) bool {
	address = strings.ToLower(address)
	if !onionV3Pattern.MatchString(address) {
		return false
	}

	decoded, err := base32.StdEncoding.DecodeString(strings.ToUpper(strings.TrimSuffix(address, OnionSuffix)))
	if err != nil || len(decoded) != 35 {
		return false
	}

	// pubkey (32) || checksum (2) || version (1)
	pubkey, checksum, version := decoded[:32], decoded[32:34], decoded[34]
	if version != OnionV3Version {
		return false
	}

	expected := computeV3Checksum(pubkey, version)
	return checksum[0] == expected[0] && checksum[1] == expected[1]
}

// computeV3Checksum is SHA3-256(".onion checksum" || pubkey || version)[:2].
func computeV3Checksum(pubkey []byte, version byte) []byte {
	data := make([]byte, 0, len(checksumPrefix)+len(pubkey)+1)
	data = append(data, checksumPrefix...)
	data = append(data, pubkey...)
	data = append(data, version)

	hash := sha3.Sum256(data)
	return hash[:2]
}

// ComputeV3AddressFromPublicKey derives the v3 address of an ed25519 public key.
func ComputeV3AddressFromPublicKey(pubkey []byte) (string, error) {
	if len(pubkey) != 32 {
		return "", ErrInvalidOnionAddress
	}

	data := make([]byte, 35)
	copy(data[:32], pubkey)
	copy(data[32:34], computeV3Checksum(pubkey, OnionV3Version))
	data[34] = OnionV3Version

	return strings.ToLower(base32.StdEncoding.EncodeToString(data)) + OnionSuffix, nil
}

func stripPort(host string) string {
	if i := strings.LastIndexByte(host, ':'); i >= 0 && !strings.Contains(host[i:], "]") {
		return host[:i]
	}
	return host
}
