package common

import "github.com/qstn-network/nft-contract/host"

const (
	// ErrOwnerWitnessFailed appears when the method must be called
	// by the owner of some asset but was not.
	ErrOwnerWitnessFailed = "owner witness check failed"
	// ErrSelfWitnessFailed appears when the method is private to the
	// contract account but was called from outside.
	ErrSelfWitnessFailed = "self witness check failed"
	// ErrWitnessFailed appears when the method must be called by a
	// certain account but was not.
	ErrWitnessFailed = "witness check failed"
)

// CheckWitness checks that the current call is made by account.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(env host.Env, account host.AccountID) {
	checkWitnessWithPanic(env, account, ErrWitnessFailed)
}

// CheckOwnerWitness checks that the current call is made by the owner
// of the touched asset. It panics with ErrOwnerWitnessFailed message on
// fail.
func CheckOwnerWitness(env host.Env, owner host.AccountID) {
	checkWitnessWithPanic(env, owner, ErrOwnerWitnessFailed)
}

// CheckSelfWitness checks that the current call is made by the contract
// account itself. It panics with ErrSelfWitnessFailed message on fail.
func CheckSelfWitness(env host.Env) {
	checkWitnessWithPanic(env, env.ContractAccount(), ErrSelfWitnessFailed)
}

func checkWitnessWithPanic(env host.Env, account host.AccountID, panicMsg string) {
	if env.CallerAccount() != account {
		panic(panicMsg)
	}
}
