package scene

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/xerrors"

	"github.com/df07/go-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned when a name matches no built-in scene or scene file
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene or a scene file. ID is the preset name
// for built-in scenes and "file:<base name>" for files.
type SceneInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Group       string `json:"group"`
	Type        string `json:"type"`
	FilePath    string `json:"filePath,omitempty"`
	Variant     string `json:"variant,omitempty"`
}

type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse lists scenes by group, built-in scenes first
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const (
	builtinGroup = "Built-in Scenes"
	fileGroup    = "Scene Files"
)

// builtinScene pairs a preset with its constructor
type builtinScene struct {
	info   SceneInfo
	create func(cameraOverrides ...renderer.CameraConfig) *Scene
}

var builtinScenes = []builtinScene{
	{
		info:   SceneInfo{ID: "default", Name: "Default Scene", Description: "Diffuse sphere resting on a large ground sphere"},
		create: NewDefaultScene,
	},
	{
		info:   SceneInfo{ID: "materials", Name: "Materials", Description: "Diffuse, hollow glass and fuzzy metal spheres side by side"},
		create: NewMaterialsScene,
	},
	{
		info:   SceneInfo{ID: "defocus", Name: "Defocus Blur", Description: "Materials scene through a thin lens with a narrow field of view"},
		create: NewDefocusScene,
	},
	{
		info:   SceneInfo{ID: "final", Name: "Random Spheres", Description: "Field of random small spheres around three large ones"},
		create: newFinalPreset,
	},
	{
		info:   SceneInfo{ID: "spheregrid", Name: "Sphere Grid", Description: "10x10 grid of rainbow-colored metallic spheres"},
		create: newSphereGridPreset,
	},
	{
		info:   SceneInfo{ID: "empty", Name: "Empty", Description: "No objects, only the sky gradient"},
		create: NewEmptyScene,
	},
}

func newFinalPreset(cameraOverrides ...renderer.CameraConfig) *Scene {
	return NewFinalScene(finalSceneLayoutSeed, cameraOverrides...)
}

func newSphereGridPreset(cameraOverrides ...renderer.CameraConfig) *Scene {
	return NewSphereGridScene(10, cameraOverrides...)
}

// Names returns the IDs of the built-in scenes in display order
func Names() []string {
	names := make([]string, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		names = append(names, b.info.ID)
	}
	return names
}

// Describe returns metadata for every built-in scene
func Describe() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		info := b.info
		info.DisplayName = info.Name
		info.Group = builtinGroup
		info.Type = "builtin"
		infos = append(infos, info)
	}
	return infos
}

// Lookup creates the scene called name: a built-in scene ID, or the path to
// a .yaml, .yml or .json scene file. The first camera override, if any, is
// merged into the scene's camera.
func Lookup(name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.create(cameraOverrides...), nil
		}
	}

	if isSceneFile(name) {
		s, err := LoadFile(name)
		if err != nil {
			return nil, err
		}
		s.CameraConfig = applyCameraOverrides(s.CameraConfig, cameraOverrides)
		return s, nil
	}

	return nil, xerrors.Errorf("%q: %w", name, ErrUnknownScene)
}

func isSceneFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// FindScenesDir returns the first existing scenes directory among the usual
// locations relative to the working directory, or "" when there is none
func FindScenesDir() string {
	for _, path := range []string{"scenes", "../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListSceneFiles returns the scene files in dir sorted by display name.
// An empty dir yields no scenes; unreadable files are skipped.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	scenes := []SceneInfo{}
	if dir == "" {
		return scenes, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, xerrors.Errorf("failed to scan scenes directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !isSceneFile(entry.Name()) {
			continue
		}
		if info, err := ParseSceneMetadata(filepath.Join(dir, entry.Name())); err == nil {
			scenes = append(scenes, info)
		}
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ParseSceneMetadata reads the "# Key: value" comment header at the top of a
// scene file. Scene, Variant, Group and Description are recognized; the
// header ends at the first line that is not a comment. Without a Scene key
// the name is derived from the file name.
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:       "file:" + base,
		Name:     titleCase(base),
		Group:    fileGroup,
		Type:     "file",
		FilePath: filePath,
	}
	fields := map[string]*string{
		"Scene":       &info.Name,
		"Variant":     &info.Variant,
		"Group":       &info.Group,
		"Description": &info.Description,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "#") {
			break
		}
		key, value, ok := strings.Cut(strings.TrimPrefix(line, "# "), ":")
		if field, known := fields[key]; ok && known {
			*field = strings.TrimSpace(value)
		}
	}

	info.DisplayName = info.Name
	if info.Variant != "" {
		info.DisplayName += " - " + info.Variant
	}
	return info, scanner.Err()
}

// ListAllScenes groups the built-in scenes and the scene files found in dir.
// Built-in scenes come first, the remaining groups follow by name.
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListSceneFiles(dir)
	if err != nil {
		return response, xerrors.Errorf("failed to list scene files: %w", err)
	}

	byGroup := make(map[string][]SceneInfo)
	for _, info := range append(Describe(), fileScenes...) {
		byGroup[info.Group] = append(byGroup[info.Group], info)
	}

	names := make([]string, 0, len(byGroup))
	for name := range byGroup {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if (names[i] == builtinGroup) != (names[j] == builtinGroup) {
			return names[i] == builtinGroup
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		response.Groups = append(response.Groups, SceneGroup{Name: name, Scenes: byGroup[name]})
	}
	return response, nil
}

// titleCase turns "hollow-glass" into "Hollow Glass"
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
