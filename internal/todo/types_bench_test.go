package todo

import (
	"fmt"
	"testing"
	"time"
)

func benchTasks(n int) []Task {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tasks := make([]Task, n)
	for i := range tasks {
		tasks[i] = Task{
			ID:          fmt.Sprintf("task-%04d", i),
			Title:       fmt.Sprintf("Task %d", i),
			Description: "some details",
			Completed:   i%3 == 0,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
	}
	return tasks
}

// BenchmarkEncodeTasks benchmarks serializing 100 tasks.
func BenchmarkEncodeTasks(b *testing.B) {
	tasks := benchTasks(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := EncodeTasks(tasks); err != nil {
			b.Fatalf("EncodeTasks failed: %v", err)
		}
	}
}

// BenchmarkDecodeTasks benchmarks validating and decoding 100 tasks.
func BenchmarkDecodeTasks(b *testing.B) {
	data, err := EncodeTasks(benchTasks(100))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeTasks(data); err != nil {
			b.Fatalf("DecodeTasks failed: %v", err)
		}
	}
}
