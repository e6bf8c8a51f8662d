// Package keys provides key-related helpers used by the spend classifier.
//
// API stability:
//
// Stable (SemVer-protected):
//   - PublicKey parsing and its CLVM field decoder. Keys are validated as points of
//     the BLS12-381 G1 group; nothing here signs or verifies.
//
// Experimental:
//   - ScalarPublicKey, which exists to build fixtures and test vectors.
package keys
