////////////////////////////////////////////////////////////////////////////////
// DeFAI contracts: marketplace, inheritance vault and token swap for vsc
////////////////////////////////////////////////////////////////////////////////

package main

import (
	"defai_contracts/contract"
)

func main() {
	debug := false
	contract.InitState(debug) // true = use MockState
	contract.InitENV(debug)
	contract.InitHost(debug)
}
