package department

import "testing"

func TestSearch(t *testing.T) {
	departments := []Department{
		{
			Name:     "Grounds",
			FullName: "Grounds and Gardens",
			Overseers: []Overseer{
				{Name: "Neema Said", Email: "neema@example.org", Phone: "+255-700-000-002"},
			},
			Documents: []Document{{Name: "Mowing rota"}},
		},
		{
			Name:      "Kitchen",
			FullName:  "Kitchen and Catering",
			Overseers: []Overseer{},
			Documents: []Document{},
		},
	}

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "blank query matches everything", query: "", want: 2},
		{name: "whitespace query matches everything", query: "   ", want: 2},
		{name: "short name", query: "kitch", want: 1},
		{name: "full name, case-insensitive", query: "GARDENS", want: 1},
		{name: "overseer name", query: "neema", want: 1},
		{name: "overseer email", query: "example.org", want: 1},
		{name: "overseer phone", query: "700-000-002", want: 1},
		{name: "document name", query: "rota", want: 1},
		{name: "substring across both", query: "and", want: 2},
		{name: "no match", query: "nonesuch", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Search(departments, tt.query); len(got) != tt.want {
				t.Errorf("Search(%q) = %d departments; want %d", tt.query, len(got), tt.want)
			}
		})
	}
}

func TestNewDocument_Validate(t *testing.T) {
	tests := []struct {
		name    string
		doc     NewDocument
		wantErr bool
	}{
		{name: "pdf", doc: NewDocument{Name: "a", ContentType: "application/pdf", Size: 10}},
		{name: "legacy word", doc: NewDocument{Name: "a", ContentType: "application/msword", Size: 10}},
		{name: "word", doc: NewDocument{Name: "a", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Size: 10}},
		{name: "plain text", doc: NewDocument{Name: "a", ContentType: "text/plain", Size: 10}},
		{name: "at the size limit", doc: NewDocument{Name: "a", ContentType: "text/plain", Size: MaxDocumentSize}},
		{name: "over the size limit", doc: NewDocument{Name: "a", ContentType: "text/plain", Size: MaxDocumentSize + 1}, wantErr: true},
		{name: "video", doc: NewDocument{Name: "a", ContentType: "video/mp4", Size: 10}, wantErr: true},
		{name: "missing name", doc: NewDocument{ContentType: "text/plain", Size: 10}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.doc.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
