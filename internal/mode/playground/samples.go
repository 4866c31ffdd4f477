package playground

// Sample is a built-in buffer the playground can load.
type Sample struct {
	Name     string
	Language string
	Text     string
}

// BuiltinSamples returns the demo buffers, one per supported language.
// The playground cycles through these with the language key.
func BuiltinSamples() []Sample {
	return []Sample{
		{
			Name:     "Go",
			Language: "go",
			Text: `package main

import (
	"fmt"
	"strings"
)

// greet builds a greeting for each name.
func greet(names []string) string {
	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "hello %s", name)
	}
	return sb.String()
}

func main() {
	names := []string{"ada", "grace", "barbara"}
	fmt.Println(greet(names))
}
`,
		},
		{
			Name:     "Python",
			Language: "python",
			Text: `import json
from dataclasses import dataclass


@dataclass
class Point:
    x: float
    y: float

    def norm(self) -> float:
        return (self.x ** 2 + self.y ** 2) ** 0.5


def main():
    points = [Point(3.0, 4.0), Point(1.0, 1.0)]
    norms = {f"p{i}": p.norm() for i, p in enumerate(points)}
    print(json.dumps(norms, indent=2))


if __name__ == "__main__":
    main()
`,
		},
		{
			Name:     "Rust",
			Language: "rust",
			Text: `use std::collections::HashMap;

fn word_counts(text: &str) -> HashMap<&str, usize> {
    let mut counts = HashMap::new();
    for word in text.split_whitespace() {
        *counts.entry(word).or_insert(0) += 1;
    }
    counts
}

fn main() {
    let text = "the quick brown fox jumps over the lazy dog the end";
    let counts = word_counts(text);
    let mut pairs: Vec<_> = counts.iter().collect();
    pairs.sort();
    for (word, n) in pairs {
        println!("{word}: {n}");
    }
}
`,
		},
		{
			Name:     "JSON",
			Language: "json",
			Text: `{
  "name": "stylet",
  "version": "0.1.0",
  "features": {
    "incremental": true,
    "themes": ["monokai", "dracula", "github"],
    "max_colors": 256
  },
  "dependencies": null
}
`,
		},
	}
}
