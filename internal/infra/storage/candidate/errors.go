package candidate

import "errors"

var (
	// ErrCandidateNotFound возвращается, когда заявка кандидата не найдена
	ErrCandidateNotFound = errors.New("candidate.repository: candidate not found")

	// ErrDuplicateCandidate возвращается при попытке создать вторую заявку для пользователя
	ErrDuplicateCandidate = errors.New("candidate.repository: candidate already exists for user")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("candidate.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("candidate.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("candidate.repository: failed to scan row")
)
