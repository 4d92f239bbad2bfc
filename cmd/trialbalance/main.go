// cmd/trialbalance/main.go
package main

import "trial-balance/cmd/trialbalance/cmd"

func main() {
	cmd.Execute()
}
