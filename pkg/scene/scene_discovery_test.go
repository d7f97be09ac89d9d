package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/xerrors"

	"github.com/df07/go-raytracer/pkg/renderer"
)

func writeSceneFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestParseSceneMetadata(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		filename string
		content  string
		want     SceneInfo
	}{
		{
			name:     "full header",
			filename: "glass.yaml",
			content: `# Scene: Glass Spheres
# Variant: Bubble
# Description: Hollow glass in front of a mirror
# Group: Materials
spheres: []
`,
			want: SceneInfo{
				ID:          "file:glass",
				Name:        "Glass Spheres",
				DisplayName: "Glass Spheres - Bubble",
				Description: "Hollow glass in front of a mirror",
				Group:       "Materials",
				Type:        "file",
				Variant:     "Bubble",
			},
		},
		{
			name:     "no header",
			filename: "hollow-glass_test.yml",
			content:  "spheres: []\n",
			want: SceneInfo{
				ID:          "file:hollow-glass_test",
				Name:        "Hollow Glass Test",
				DisplayName: "Hollow Glass Test",
				Group:       "Scene Files",
				Type:        "file",
			},
		},
		{
			name:     "metadata after body is ignored",
			filename: "late.yaml",
			content: `spheres: []
# Scene: Too Late
`,
			want: SceneInfo{
				ID:          "file:late",
				Name:        "Late",
				DisplayName: "Late",
				Group:       "Scene Files",
				Type:        "file",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSceneFile(t, dir, tt.filename, tt.content)
			tt.want.FilePath = path

			got, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Metadata mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSceneMetadataMissingFile(t *testing.T) {
	if _, err := ParseSceneMetadata(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "zeta.yaml", "# Scene: Alpha\nspheres: []\n")
	writeSceneFile(t, dir, "beta.json", `{"spheres": []}`)
	writeSceneFile(t, dir, "notes.txt", "# Scene: Ignored\n")
	if err := os.Mkdir(filepath.Join(dir, "nested.yaml"), 0755); err != nil {
		t.Fatal(err)
	}

	scenes, err := ListSceneFiles(dir)
	if err != nil {
		t.Fatalf("ListSceneFiles failed: %v", err)
	}

	var names []string
	for _, s := range scenes {
		names = append(names, s.DisplayName)
	}
	if diff := cmp.Diff([]string{"Alpha", "Beta"}, names); diff != "" {
		t.Errorf("Scene list mismatch (-want +got):\n%s", diff)
	}

	empty, err := ListSceneFiles("")
	if err != nil || len(empty) != 0 {
		t.Errorf("Expected no scenes for an empty directory name, got %v, %v", empty, err)
	}

	if _, err := ListSceneFiles(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected an error for a missing directory")
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "a.yaml", "# Group: Experiments\nspheres: []\n")
	writeSceneFile(t, dir, "b.yaml", "spheres: []\n")

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes failed: %v", err)
	}

	var groups []string
	for _, g := range response.Groups {
		groups = append(groups, g.Name)
	}
	if diff := cmp.Diff([]string{"Built-in Scenes", "Experiments", "Scene Files"}, groups); diff != "" {
		t.Errorf("Group order mismatch (-want +got):\n%s", diff)
	}

	builtin := response.Groups[0].Scenes
	if len(builtin) != len(Names()) {
		t.Errorf("Expected %d built-in scenes, got %d", len(Names()), len(builtin))
	}
	for _, info := range builtin {
		if info.Type != "builtin" || info.DisplayName == "" {
			t.Errorf("Unexpected built-in scene info %+v", info)
		}
	}
}

func TestLookup(t *testing.T) {
	dir := t.TempDir()
	path := writeSceneFile(t, dir, "single.yaml", `
camera: {image_width: 50}
materials: {m: {type: lambertian, albedo: [0.5, 0.5, 0.5]}}
spheres: [{center: [0, 0, -1], radius: 0.5, material: m}]
`)

	s, err := Lookup(path, renderer.CameraConfig{ImageWidth: 80})
	if err != nil {
		t.Fatalf("Lookup of a scene file failed: %v", err)
	}
	if s.Name != "single" || s.CameraConfig.ImageWidth != 80 {
		t.Errorf("Expected scene %q at width 80, got %q at width %d", "single", s.Name, s.CameraConfig.ImageWidth)
	}

	s, err = Lookup("default")
	if err != nil {
		t.Fatalf("Lookup of a built-in scene failed: %v", err)
	}
	if s.CameraConfig.ImageWidth != 400 {
		t.Errorf("Expected default width 400 without overrides, got %d", s.CameraConfig.ImageWidth)
	}

	if _, err := Lookup("cornell"); !xerrors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
	if _, err := Lookup(filepath.Join(dir, "missing.yaml")); !xerrors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist for a missing scene file, got %v", err)
	}
}

func TestDescribeMatchesNames(t *testing.T) {
	infos := Describe()
	var ids []string
	for _, info := range infos {
		ids = append(ids, info.ID)
		if info.Group != "Built-in Scenes" {
			t.Errorf("Scene %q in group %q", info.ID, info.Group)
		}
	}
	if diff := cmp.Diff(Names(), ids); diff != "" {
		t.Errorf("Describe/Names mismatch (-want +got):\n%s", diff)
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"hollow-glass", "Hollow Glass"},
		{"three_spheres", "Three Spheres"},
		{"RANDOM", "Random"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := titleCase(tt.input); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
