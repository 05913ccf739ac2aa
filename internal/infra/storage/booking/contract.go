package booking

import "github.com/vkorolev/CPS-ConsultationService/pkg/txmanager"

// Переиспользуем интерфейс исполнителя из txmanager
type DBExecutor = txmanager.Executor
