package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"простой заголовок", "Hello World", "hello-world"},
		{"знаки препинания", "Solar Panels: 2024 Edition!", "solar-panels-2024-edition"},
		{"повторные пробелы", "a   b\t\tc", "a-b-c"},
		{"повторные дефисы", "a - - b", "a-b"},
		{"кириллица удаляется", "Новости Solar", "-solar"},
		{"пустая строка", "", ""},
		{"пробелы по краям", " edge ", "-edge-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.title); got != tt.want {
				t.Errorf("Make(%q) = %q, ожидается %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"уже допустимый", "solar-energy", "solar-energy"},
		{"верхний регистр", "Central-AC", "central-ac"},
		{"пробелы и знаки", "fire safety!", "fire-safety-"},
		{"пробелы по краям", "  elv ", "elv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, ожидается %q", tt.in, got, tt.want)
			}
		})
	}
}
