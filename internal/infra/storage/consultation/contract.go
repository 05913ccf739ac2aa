package consultation

import "github.com/vkorolev/CPS-ConsultationService/pkg/txmanager"

// Переиспользуем интерфейс исполнителя из txmanager
// Репозиторий не знает, выполняется он в транзакции или нет
type DBExecutor = txmanager.Executor
