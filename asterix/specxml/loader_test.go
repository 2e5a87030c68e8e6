// specxml/loader_test.go
package specxml

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fileOpener(dir string) FileOpener {
	return func(path string) (io.ReadCloser, error) {
		return os.Open(filepath.Join(dir, path))
	}
}

func stringOpener(contents map[string]string) FileOpener {
	return func(path string) (io.ReadCloser, error) {
		s, ok := contents[path]
		if !ok {
			return nil, os.ErrNotExist
		}
		return io.NopCloser(strings.NewReader(s)), nil
	}
}

func TestLoadDefinitionFixtures(t *testing.T) {
	def, err := LoadDefinition(fileOpener("../../testdata/categories"), "index.xml")
	if err != nil {
		t.Fatalf("LoadDefinition: %v", err)
	}

	cats := def.Categories()
	want := []uint8{48, 62, 255}
	if len(cats) != len(want) {
		t.Fatalf("got categories %v, want %v", cats, want)
	}
	for i, c := range want {
		if cats[i] != c {
			t.Errorf("categories[%d] = %d, want %d", i, cats[i], c)
		}
	}

	cat48, ok := def.Category(48)
	if !ok {
		t.Fatal("category 48 not found")
	}
	if cat48.Edition != "1.21" {
		t.Errorf("cat48 edition = %s, want 1.21", cat48.Edition)
	}
	if uap := cat48.DefaultUAP(); uap == nil || len(uap.Items) != 8 {
		t.Fatalf("cat48 default UAP = %+v, want 8 items", uap)
	}
	if _, ok := cat48.Item("170"); !ok {
		t.Error("cat48 item 170 not found")
	}

	cat255, ok := def.Category(255)
	if !ok {
		t.Fatal("category 255 not found")
	}
	if len(cat255.ConditionalUAPs()) != 1 {
		t.Fatalf("cat255 conditional UAPs = %d, want 1", len(cat255.ConditionalUAPs()))
	}
}

func TestLoadDefinitionMalformedXML(t *testing.T) {
	contents := map[string]string{
		"index.xml": `<Definitions><Definition cat="1" edition="1.0" file="a.xml"`,
	}
	_, err := LoadDefinition(stringOpener(contents), "index.xml")
	if err == nil {
		t.Fatal("expected an error for truncated XML")
	}
	var de *DefinitionError
	if !errors.As(err, &de) {
		t.Fatalf("error is not a DefinitionError: %v", err)
	}
	if de.Kind != ErrMalformedXML {
		t.Errorf("kind = %s, want malformed XML", de.Kind)
	}
}

func TestLoadDefinitionUnknownElement(t *testing.T) {
	contents := map[string]string{
		"index.xml": `<Definitions><Bogus/></Definitions>`,
	}
	_, err := LoadDefinition(stringOpener(contents), "index.xml")
	var de *DefinitionError
	if !errors.As(err, &de) {
		t.Fatalf("error is not a DefinitionError: %v", err)
	}
	if de.Kind != ErrUnknownElement {
		t.Errorf("kind = %s, want unknown element", de.Kind)
	}
}

func TestLoadDefinitionUnknownAttribute(t *testing.T) {
	contents := map[string]string{
		"index.xml": `<Definitions><Definition cat="1" edition="1.0" file="a.xml" bogus="x"/></Definitions>`,
		"a.xml":     `<Category number="1" edition="1.0" name="n"><UAP name="default"></UAP></Category>`,
	}
	_, err := LoadDefinition(stringOpener(contents), "index.xml")
	var de *DefinitionError
	if !errors.As(err, &de) {
		t.Fatalf("error is not a DefinitionError: %v", err)
	}
	if de.Kind != ErrUnknownAttribute {
		t.Errorf("kind = %s, want unknown attribute", de.Kind)
	}
}

func TestLoadDefinitionCategoryNumberMismatch(t *testing.T) {
	contents := map[string]string{
		"index.xml": `<Definitions><Definition cat="2" edition="1.0" file="a.xml"/></Definitions>`,
		"a.xml":     `<Category number="1" edition="1.0" name="n"><UAP name="default"></UAP></Category>`,
	}
	_, err := LoadDefinition(stringOpener(contents), "index.xml")
	if err == nil {
		t.Fatal("expected an error when index cat differs from file cat")
	}
	var de *DefinitionError
	if !errors.As(err, &de) {
		t.Fatalf("error is not a DefinitionError: %v", err)
	}
	if de.Kind != ErrOutOfRange {
		t.Errorf("kind = %s, want out of range", de.Kind)
	}
}
