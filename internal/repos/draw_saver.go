package repos

import "github.com/petuhovskiy/qsampler/internal/models"

type DrawSaverArgs struct {
	Session string
	Run     uint
}

func (a *DrawSaverArgs) Apply(d *models.Draw) {
	if d.Session == "" {
		d.Session = a.Session
	}
	if d.Run == 0 {
		d.Run = a.Run
	}
}

// DrawSaver fills in run-wide fields and saves draws.
type DrawSaver struct {
	repo *DrawRepo
	args DrawSaverArgs
}

func NewDrawSaver(repo *DrawRepo, args DrawSaverArgs) *DrawSaver {
	return &DrawSaver{
		repo: repo,
		args: args,
	}
}

func (s *DrawSaver) Save(draw *models.Draw) error {
	s.args.Apply(draw)
	return s.repo.Save(draw)
}
