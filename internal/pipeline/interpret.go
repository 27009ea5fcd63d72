package pipeline

import (
	"fmt"
	"strconv"
)

// Event types and attributes emitted by the wasm module.
const (
	EventStoreCode           = "store_code"
	EventInstantiateContract = "instantiate_contract"

	AttributeCodeID          = "code_id"
	AttributeContractAddress = "contract_address"
)

// StoreCodeID returns the code id assigned by a successful store-code
// transaction.
func StoreCodeID(result *Result) (uint64, error) {
	value, err := firstValue(result, EventStoreCode, AttributeCodeID)
	if err != nil {
		return 0, err
	}

	codeID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid code id %q: %w", value, err)
	}
	return codeID, nil
}

// InstantiatedAddress returns the address of the contract created by a
// successful instantiate transaction.
func InstantiatedAddress(result *Result) (string, error) {
	return firstValue(result, EventInstantiateContract, AttributeContractAddress)
}

func firstValue(result *Result, eventType, key string) (string, error) {
	if result == nil {
		return "", &MissingEventError{EventType: eventType, Attribute: key}
	}
	values, ok := result.Events.Values(eventType, key)
	if !ok || len(values) == 0 || values[0] == "" {
		return "", &MissingEventError{EventType: eventType, Attribute: key}
	}
	return values[0], nil
}
