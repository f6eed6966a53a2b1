package main

import "github.com/satyammistari/gysql/cmd"

func main() {
	cmd.Execute()
}
