package convert_test

import (
	"context"
	"strings"
	"testing"

	"github.com/yaklabco/admonish/pkg/convert"
)

func benchmarkDocument(sections int) []byte {
	var builder strings.Builder
	builder.WriteString("---\ntitle: Bench\n---\n# Bench\n\n")
	markers := []string{"NOTE", "TIP", "IMPORTANT", "WARNING", "CAUTION"}
	for i := range sections {
		builder.WriteString("Some *text* with `code` and a [link](https://example.com).\n\n")
		builder.WriteString("> [!" + markers[i%len(markers)] + "]\n> Body line one.\n> Body line two.\n\n")
		builder.WriteString("```go\nfunc main() {}\n```\n\n")
	}
	return []byte(builder.String())
}

func benchmarkConvert(b *testing.B, opts convert.Options, content []byte) {
	b.Helper()

	conv, err := convert.New(opts)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.SetBytes(int64(len(content)))
	b.ResetTimer()
	for range b.N {
		if _, err := conv.Convert(ctx, "bench.md", content); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkConvertSmall(b *testing.B) {
	benchmarkConvert(b, convert.DefaultOptions(), benchmarkDocument(1))
}

func BenchmarkConvertLarge(b *testing.B) {
	benchmarkConvert(b, convert.DefaultOptions(), benchmarkDocument(200))
}

func BenchmarkConvertStandalone(b *testing.B) {
	opts := convert.DefaultOptions()
	opts.Standalone = true
	benchmarkConvert(b, opts, benchmarkDocument(50))
}
