// Command tennisdash turns a shared sheet of recorded tennis sets into a
// leaderboard, head-to-head grids, win-percentage trends and a recent feed,
// in the terminal or as a small web dashboard.
package main

import "github.com/pable/tennisdash/cmd"

func main() {
	cmd.Execute()
}
