package config

import (
	"fmt"
	"sort"
	"strings"
)

// Contract names used by the operator commands.
const (
	ContractMarsToken     = "mars_token"
	ContractMarsCouncil   = "mars_council"
	ContractMarsRedBank   = "mars_red_bank"
	ContractAstroportPair = "astroport_mars_ust_pair"
)

// Contracts maps a contract name to its address on one network.
type Contracts map[string]string

// Get returns the address of name or a ConfigurationError.
func (c Contracts) Get(name string) (string, error) {
	addr, ok := c[name]
	if !ok || addr == "" {
		return "", &ConfigurationError{
			Field:  "contracts." + name,
			Reason: "no address configured for this network",
		}
	}
	return addr, nil
}

// Profile is a resolved network: where to connect and which contracts live
// there.
type Profile struct {
	Name      string
	ChainID   string
	LCDURL    string
	Contracts Contracts
}

func builtinProfiles() map[string]Profile {
	return map[string]Profile{
		"mainnet": {
			Name:    "mainnet",
			ChainID: "columbus-5",
			LCDURL:  "https://lcd.terra.dev",
			Contracts: Contracts{
				ContractMarsToken:     "terra12hgwnpupflfpuual532wgrxu2gjp0tcagzgx4n",
				ContractMarsCouncil:   "terra1685de0sx5px80d47ec2xjln224phshysqxxeje",
				ContractMarsRedBank:   "terra19dtgj9j5j7kyf3pmejqv8vzfpxtejaypgzkz5u",
				ContractAstroportPair: "terra19wauh79y42u5vt62c5adt2g5h4exgh26t3rpds",
			},
		},
		"testnet": {
			Name:    "testnet",
			ChainID: "bombay-12",
			LCDURL:  "https://bombay-lcd.terra.dev",
			Contracts: Contracts{
				ContractMarsToken:     "terra1h9tmwpwll5zpx6dvu28t8mvjk9jctu9nftm5ru",
				ContractMarsCouncil:   "terra1jtdz9fhrrwd8yak6e3z7utmkypvx0qf0n393c6",
				ContractMarsRedBank:   "terra1avkm5w0gzwm92h0dlxymsdhx4l2rm7k0lxnwq7",
				ContractAstroportPair: "terra144m28x7d3lzjzp423mdydll6cmfafg407ve3ev",
			},
		},
		"localterra": {
			Name:      "localterra",
			ChainID:   "localterra",
			LCDURL:    "http://localhost:1317",
			Contracts: Contracts{},
		},
	}
}

// BuiltinNetworks returns the names of the built-in profiles, sorted.
func BuiltinNetworks() []string {
	profiles := builtinProfiles()
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveProfile returns the profile for name, with overrides from the
// [networks] tables applied on top of the built-in values. A network that is
// only declared in overrides must set both chain_id and lcd_url.
func ResolveProfile(name string, overrides map[string]NetworkConfig) (Profile, error) {
	if name == "" {
		return Profile{}, &ConfigurationError{Field: "network", Reason: "no network selected"}
	}

	profiles := builtinProfiles()
	profile, builtin := profiles[name]
	override, overridden := overrides[name]
	if !builtin && !overridden {
		return Profile{}, &ConfigurationError{
			Field:  "network",
			Reason: fmt.Sprintf("invalid network %q, must be %s", name, strings.Join(knownNetworks(overrides), "|")),
		}
	}

	if !builtin {
		profile = Profile{Name: name, Contracts: Contracts{}}
	}
	if override.ChainID != nil {
		profile.ChainID = *override.ChainID
	}
	if override.LCDURL != nil {
		profile.LCDURL = *override.LCDURL
	}
	for contract, addr := range override.Contracts {
		profile.Contracts[contract] = addr
	}

	if profile.ChainID == "" {
		return Profile{}, &ConfigurationError{Field: "networks." + name + ".chain_id", Reason: "required"}
	}
	if profile.LCDURL == "" {
		return Profile{}, &ConfigurationError{Field: "networks." + name + ".lcd_url", Reason: "required"}
	}

	return profile, nil
}

func knownNetworks(overrides map[string]NetworkConfig) []string {
	names := BuiltinNetworks()
	for name := range overrides {
		if _, ok := builtinProfiles()[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
