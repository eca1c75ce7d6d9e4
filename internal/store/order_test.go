package store

import (
	"testing"
	"time"
)

func at(value string) *time.Time {
	t, err := time.Parse(DateFormat, value)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestCompareListTier(t *testing.T) {
	today := Task{ID: "a", List: ListToday, Priority: 3}
	todo := Task{ID: "b", List: ListTodo, Priority: 1, Expire: at("2024-01-01 00:00")}

	// today outranks todo regardless of expiry and priority
	if c := Compare(today, todo); c >= 0 {
		t.Errorf("Compare(today, todo) = %d, want negative", c)
	}
	if c := Compare(todo, today); c <= 0 {
		t.Errorf("Compare(todo, today) = %d, want positive", c)
	}
}

func TestCompareExpireTier(t *testing.T) {
	earlier := Task{ID: "a", List: ListTodo, Expire: at("2024-01-01 00:00")}
	later := Task{ID: "b", List: ListTodo, Expire: at("2024-06-01 00:00")}
	never := Task{ID: "c", List: ListTodo}

	if c := Compare(earlier, later); c >= 0 {
		t.Errorf("earlier vs later = %d, want negative", c)
	}
	// no expiry sorts after any concrete expiry
	if c := Compare(later, never); c >= 0 {
		t.Errorf("later vs never = %d, want negative", c)
	}
}

func TestCompareExpireSentinelBound(t *testing.T) {
	// a concrete expiry before year 2100 still beats a missing one
	late := Task{ID: "a", List: ListTodo, Expire: at("2099-12-31 23:59")}
	never := Task{ID: "b", List: ListTodo}
	if c := Compare(late, never); c >= 0 {
		t.Errorf("late vs never = %d, want negative", c)
	}
}

func TestComparePriorityTier(t *testing.T) {
	p1 := Task{ID: "a", List: ListTodo, Priority: 1}
	p2 := Task{ID: "b", List: ListTodo, Priority: 2}
	if c := Compare(p1, p2); c >= 0 {
		t.Errorf("p1 vs p2 = %d, want negative", c)
	}
}

func TestCompareIDTieBreak(t *testing.T) {
	a := Task{ID: "aaa111", List: ListTodo, Priority: 1}
	b := Task{ID: "bbb222", List: ListTodo, Priority: 1}
	if c := Compare(a, b); c >= 0 {
		t.Errorf("id tie-break = %d, want negative", c)
	}
}

func TestCompareIdenticalTasksEqual(t *testing.T) {
	a := Task{ID: "same01", List: ListToday, Priority: 2, Expire: at("2024-01-01 00:00")}
	if c := Compare(a, a); c != 0 {
		t.Errorf("Compare(a, a) = %d, want 0", c)
	}
}

func TestSortByUrgency(t *testing.T) {
	a := Task{ID: "A", Title: "A", List: ListToday, Priority: 2, Expire: at("2024-01-01 00:00")}
	b := Task{ID: "B", Title: "B", List: ListToday, Priority: 1, Expire: at("2024-01-01 00:00")}
	c := Task{ID: "C", Title: "C", List: ListTodo, Priority: 1}

	tasks := []Task{a, c, b}
	SortByUrgency(tasks)

	got := []string{tasks[0].ID, tasks[1].ID, tasks[2].ID}
	want := []string{"B", "A", "C"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}
}
