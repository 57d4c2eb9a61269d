package main

import "github.com/RyanBlaney/spectral-calibration/cmd"

func main() {
	cmd.Execute()
}
