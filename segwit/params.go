// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package segwit

// Net describes the segwit address parameters of a bitcoin network.
type Net struct {
	// Name is the name used to select the network, e.g. on the command
	// line.
	Name string

	// HRP is the human-readable part of segwit addresses on the network.
	HRP string
}

var (
	// MainNet defines the segwit address parameters of the main network.
	MainNet = Net{Name: "mainnet", HRP: "bc"}

	// TestNet3 defines the segwit address parameters of the test network
	// (version 3).
	TestNet3 = Net{Name: "testnet3", HRP: "tb"}

	// TestNet4 defines the segwit address parameters of the test network
	// (version 4).
	TestNet4 = Net{Name: "testnet4", HRP: "tb"}

	// SigNet defines the segwit address parameters of the default signet.
	SigNet = Net{Name: "signet", HRP: "tb"}

	// RegressionNet defines the segwit address parameters of the regression
	// test network.
	RegressionNet = Net{Name: "regtest", HRP: "bcrt"}

	// SimNet defines the segwit address parameters of the simulation test
	// network.
	SimNet = Net{Name: "simnet", HRP: "sb"}
)

// Nets lists the known networks in the order ParseAddress tries them.
var Nets = []*Net{
	&MainNet,
	&TestNet3,
	&TestNet4,
	&SigNet,
	&RegressionNet,
	&SimNet,
}

// NetByName returns the known network with the given name.
func NetByName(name string) (*Net, bool) {
	for _, net := range Nets {
		if net.Name == name {
			return net, true
		}
	}
	return nil, false
}

// IsSegwitPrefix returns whether the prefix is a known prefix for segwit
// addresses on any known network.  This is used when decoding an address
// string into a specific address type.
func IsSegwitPrefix(prefix string) bool {
	for _, net := range Nets {
		if prefix == net.HRP+"1" {
			return true
		}
	}
	return false
}
