package text_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/walteh/linepatch/pkg/text"
)

func ExampleLinePatcher_PatchLines() {
	patcher := text.NewLinePatcher()

	content := strings.NewReader("alpha\nbeta queue_free\ngamma\n")

	result, err := patcher.PatchLines(context.Background(), content, text.PatchRule{
		SearchPhrase: "queue_free",
		InsertText:   " // disabled",
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Print(string(result.ModifiedContent))
	fmt.Printf("Lines: %d\n", result.LineCount)
	fmt.Printf("Matches: %v\n", result.MatchedLines)

	// Output:
	// alpha
	// beta queue_free // disabled
	// gamma
	// Lines: 3
	// Matches: [2]
}

func ExampleLineDiff() {
	fmt.Print(text.LineDiff("a\nqueue_free\n", "a\nqueue_free;\n"))

	// Output:
	// -queue_free
	// +queue_free;
}
