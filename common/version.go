package common

import "strconv"

const (
	major = 1
	minor = 0
	patch = 0

	// Versions from which an update should be performed. These should
	// be used in a group (prevMinor can be equal to minor if there are
	// any migration routines).
	prevMajor = 1
	prevMinor = 0
	prevPatch = 0

	Version = major*1_000_000 + minor*1_000 + patch

	PrevVersion = prevMajor*1_000_000 + prevMinor*1_000 + prevPatch

	// ErrVersionMismatch is thrown by CheckVersion in case of error.
	ErrVersionMismatch = "previous version mismatch"

	// ErrAlreadyUpdated is thrown by CheckVersion if the current
	// version equals the version the contract is being updated from.
	ErrAlreadyUpdated = "contract is already of the latest version"
)

// CheckVersion checks that the previous version is not below PrevVersion
// to ensure migrating contract data was done successfully.
func CheckVersion(from int) {
	if from < PrevVersion {
		panic(ErrVersionMismatch + ": expected >=" + strconv.Itoa(PrevVersion))
	}
	if from == Version {
		panic(ErrAlreadyUpdated + ": " + strconv.Itoa(Version))
	}
}
