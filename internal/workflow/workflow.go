package workflow

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the site's build-and-deploy workflow lives.
const DefaultPath = ".github/workflows/build-and-deploy.yml"

type Step struct {
	Name string `yaml:"name"`
	Uses string `yaml:"uses"`
	Run  string `yaml:"run"`
	// If is carried for display only; conditions are not evaluated locally.
	If string `yaml:"if"`

	TimeoutMinutes int `yaml:"timeout-minutes"`
}

// DisplayName returns the step name, or a placeholder for unnamed steps.
func (s Step) DisplayName() string {
	if s.Name == "" {
		return "Unnamed step"
	}
	return s.Name
}

type Job struct {
	ID    string `yaml:"-"`
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Jobs keeps workflow jobs in document order.
type Jobs []Job

// UnmarshalYAML decodes the jobs mapping preserving key order.
func (j *Jobs) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: jobs must be a mapping", value.Line)
	}
	out := make(Jobs, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var job Job
		if err := value.Content[i+1].Decode(&job); err != nil {
			return fmt.Errorf("job %q: %w", value.Content[i].Value, err)
		}
		job.ID = value.Content[i].Value
		out = append(out, job)
	}
	*j = out
	return nil
}

type Workflow struct {
	Name string `yaml:"name"`
	Jobs Jobs   `yaml:"jobs"`
}

// DisplayName returns the workflow name, or a placeholder.
func (w *Workflow) DisplayName() string {
	if w.Name == "" {
		return "Unnamed"
	}
	return w.Name
}

// MainJob returns the first job in document order.
func (w *Workflow) MainJob() (Job, bool) {
	if len(w.Jobs) == 0 {
		return Job{}, false
	}
	return w.Jobs[0], true
}

// Load reads a workflow YAML file and returns a validated Workflow.
func Load(path string) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates workflow YAML.
func Parse(data []byte) (*Workflow, error) {
	var wf Workflow
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, err
	}
	if err := Validate(&wf); err != nil {
		return nil, err
	}
	return &wf, nil
}
