package mocks

//go:generate mockgen -destination=./mock_policy.go -package=mocks github.com/rustyeddy/tradegym/sim Policy
//go:generate mockgen -destination=./mock_journal.go -package=mocks github.com/rustyeddy/tradegym/journal Journal
