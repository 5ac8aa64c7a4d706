package main

import (
	"Meghna/FiberConfig"
	"Meghna/Models"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	Models.Connect()
	FiberConfig.FiberConfig()
}
