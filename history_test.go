package secsearch

import (
	"reflect"
	"testing"
)

func TestStack(t *testing.T) {
	var s Stack[string]
	if _, ok := s.Pop(); ok {
		t.Fatal("Pop on empty stack reported ok")
	}
	s.Push("a")
	s.Push("b")
	if v, ok := s.Peek(); !ok || v != "b" {
		t.Errorf("Peek = %q, %v; want b, true", v, ok)
	}
	if v, _ := s.Pop(); v != "b" {
		t.Errorf("Pop = %q; want b", v)
	}
	if v, _ := s.Pop(); v != "a" {
		t.Errorf("Pop = %q; want a", v)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after draining; want 0", s.Len())
	}
}

func TestQueue(t *testing.T) {
	var q Queue[int]
	q.Enqueue(1)
	q.Enqueue(2)
	q.Enqueue(3)
	if v, _ := q.Dequeue(); v != 1 {
		t.Errorf("Dequeue = %d; want 1", v)
	}
	if got := q.Items(); !reflect.DeepEqual(got, []int{2, 3}) {
		t.Errorf("Items = %v; want [2 3]", got)
	}
	if q.Len() != 2 {
		t.Errorf("Len = %d; want 2", q.Len())
	}
}

func TestNavigationHistory(t *testing.T) {
	var nav NavigationHistory

	if nav.CanGoBack() || nav.CanGoForward() {
		t.Fatal("fresh history can navigate")
	}
	if _, ok := nav.Back(); ok {
		t.Fatal("Back on empty history reported ok")
	}

	nav.Visit("firewall")
	nav.Visit("phishing")
	nav.Visit("malware")

	if !nav.CanGoBack() {
		t.Fatal("CanGoBack = false after three visits")
	}
	if q, _ := nav.Back(); q != "phishing" {
		t.Errorf("Back = %q; want phishing", q)
	}
	if q, _ := nav.Back(); q != "firewall" {
		t.Errorf("Back = %q; want firewall", q)
	}
	if !nav.CanGoForward() {
		t.Fatal("CanGoForward = false after going back")
	}
	if q, _ := nav.Forward(); q != "phishing" {
		t.Errorf("Forward = %q; want phishing", q)
	}

	// a new visit abandons the forward branch
	nav.Visit("ransomware")
	if nav.CanGoForward() {
		t.Error("forward branch survived a new visit")
	}
	if q, _ := nav.Back(); q != "phishing" {
		t.Errorf("Back after branch = %q; want phishing", q)
	}
	if cur, _ := nav.Current(); cur != "phishing" {
		t.Errorf("Current = %q; want phishing", cur)
	}
}

func TestRecentQueries(t *testing.T) {
	r := NewRecentQueries(3)
	r.Add("one")
	r.Add("two")
	r.Add("two") // duplicates are not re-recorded
	r.Add("three")
	r.Add("four") // evicts "one"

	want := []string{"two", "three", "four"}
	if got := r.All(); !reflect.DeepEqual(got, want) {
		t.Errorf("All = %v; want %v", got, want)
	}
}
