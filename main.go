package main

import (
	"github.com/sirupsen/logrus"

	"github.com/Abhimanyu14/material-symbols/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if err := cmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
