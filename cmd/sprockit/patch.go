package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cbegin/sprockit-go/internal/patch"
)

func runPatchList(cmd *cobra.Command, args []string) error {
	names, err := patch.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		dir, _ := patch.Dir()
		fmt.Printf("no patches in %s\n", dir)
		return nil
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

func runPatchShow(cmd *cobra.Command, args []string) error {
	p, err := patch.Load(args[0])
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runPatchInit(cmd *cobra.Command, args []string) error {
	p := patch.Default()
	p.Name = args[0]
	if err := p.Save(); err != nil {
		return err
	}
	path, _ := patch.Path(p.Name)
	fmt.Printf("saved %s\n", path)
	return nil
}
