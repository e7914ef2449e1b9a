package app

import (
	"github.com/quorumnet/ledger"
	"github.com/quorumnet/ledger/errors"
)

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []ledger.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []ledger.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes them a consistent whole again
func JoinResults(keys, values *ResultSet) ([]ledger.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrap(errors.ErrInput, "mismatched result set size")
	}
	mods := make([]ledger.Model, len(kref))
	for i := range mods {
		mods[i] = ledger.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}

// UnmarshalOneResult will parse a ResultSet and, if it is not empty,
// unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o ledger.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if len(res.Results) == 0 {
		return nil
	}
	return o.Unmarshal(res.Results[0])
}
