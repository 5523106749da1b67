package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/rezkam/todos/tools/linters/sqlconcat"
)

func main() {
	singlechecker.Main(sqlconcat.Analyzer)
}
