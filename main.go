package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/quiver/internal/quiver/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := quiver(); err != nil {
		logrus.Fatal(err)
	}
}

func quiver() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
