package patch_test

import (
	"context"
	"fmt"

	"github.com/walteh/blockpatch/pkg/patch"
)

func ExampleEngine_ApplyAll() {
	// Define the ruleset. Order matters: the second rule's search text
	// only exists after the first rule introduced it.
	rs, err := patch.NewRuleSet(
		patch.Rule{Name: "intro", Search: "X", Replace: "Y"},
		patch.Rule{Name: "chain", Search: "Y", Replace: "Z"},
	)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	// Apply it to a buffer
	engine := patch.New(patch.Options{})
	result, err := engine.ApplyAll(context.Background(), []byte("A. X. B."), rs)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Output: %s\n", result.Content)
	for _, report := range result.Reports {
		fmt.Printf("%s: %d\n", report.Name, report.Occurrences)
	}

	// Output:
	// Output: A. Z. B.
	// intro: 1
	// chain: 1
}

func ExampleEngine_ApplyAll_mismatch() {
	rs, err := patch.NewRuleSet(
		patch.Rule{Search: "not present", Replace: "anything"},
	)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	engine := patch.New(patch.Options{})
	_, err = engine.ApplyAll(context.Background(), []byte("A. B."), rs)
	fmt.Printf("Error: %v\n", err)

	// Output:
	// Error: rule 0: search text not found (0 occurrences)
}
