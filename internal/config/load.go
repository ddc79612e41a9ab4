package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvFilePattern  = "PROPYAML_FILE_PATTERN"
	EnvSortKeys     = "PROPYAML_SORT_KEYS"
	EnvTargetSuffix = "PROPYAML_TARGET_SUFFIX"
	EnvRetire       = "PROPYAML_RETIRE"
	EnvBackupDir    = "PROPYAML_BACKUP_DIR"
	EnvManifest     = "PROPYAML_MANIFEST"
	EnvJobs         = "PROPYAML_JOBS"
)

// FileReader is the subset of fsops.FS needed to load configuration.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// Load layers defaults, the root's config file and the environment. The
// result is not normalized so that flags can still be applied on top.
func Load(fs FileReader, root string) (Options, error) {
	opts := Defaults()

	if err := applyFile(fs, filepath.Join(root, ConfigFileName), &opts); err != nil {
		return opts, err
	}

	env, err := LoadEnvFile(fs, filepath.Join(root, EnvFileName))
	if err != nil {
		return opts, err
	}
	for _, name := range []string{EnvFilePattern, EnvSortKeys, EnvTargetSuffix, EnvRetire, EnvBackupDir, EnvManifest, EnvJobs} {
		if v, ok := os.LookupEnv(name); ok {
			env[name] = v
		}
	}
	if err := applyEnv(env, &opts); err != nil {
		return opts, err
	}

	return opts, nil
}

// fileOptions mirrors Options with pointers so absent keys keep defaults.
type fileOptions struct {
	FilePattern  *string `yaml:"filePattern"`
	SortKeys     *bool   `yaml:"sortKeys"`
	TargetSuffix *string `yaml:"targetSuffix"`
	Retire       *string `yaml:"retire"`
	BackupDir    *string `yaml:"backupDir"`
	Manifest     *string `yaml:"manifest"`
	Jobs         *int    `yaml:"jobs"`
}

func applyFile(fs FileReader, path string, opts *Options) error {
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fo fileOptions
	if err := yaml.Unmarshal(data, &fo); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fo.FilePattern != nil {
		opts.FilePattern = *fo.FilePattern
	}
	if fo.SortKeys != nil {
		opts.SortKeys = *fo.SortKeys
	}
	if fo.TargetSuffix != nil {
		opts.TargetSuffix = *fo.TargetSuffix
	}
	if fo.Retire != nil {
		opts.Retire = RetirePolicy(*fo.Retire)
	}
	if fo.BackupDir != nil {
		opts.BackupDir = *fo.BackupDir
	}
	if fo.Manifest != nil {
		opts.Manifest = *fo.Manifest
	}
	if fo.Jobs != nil {
		opts.Jobs = *fo.Jobs
	}
	return nil
}

// LoadEnvFile parses a dotenv file. A missing file yields an empty map.
func LoadEnvFile(fs FileReader, path string) (map[string]string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	env, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env file %s: %w", path, err)
	}
	return env, nil
}

func applyEnv(env map[string]string, opts *Options) error {
	if v, ok := env[EnvFilePattern]; ok {
		opts.FilePattern = v
	}
	if v, ok := env[EnvSortKeys]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvSortKeys, v, err)
		}
		opts.SortKeys = b
	}
	if v, ok := env[EnvTargetSuffix]; ok {
		opts.TargetSuffix = v
	}
	if v, ok := env[EnvRetire]; ok {
		opts.Retire = RetirePolicy(v)
	}
	if v, ok := env[EnvBackupDir]; ok {
		opts.BackupDir = v
	}
	if v, ok := env[EnvManifest]; ok {
		opts.Manifest = v
	}
	if v, ok := env[EnvJobs]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvJobs, v, err)
		}
		opts.Jobs = n
	}
	return nil
}
