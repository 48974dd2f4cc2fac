package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/avc/smm-panel/internal/domain"
	"github.com/avc/smm-panel/internal/utils/ident"
	"github.com/avc/smm-panel/internal/utils/pricing"
)

// BankDetails — статические реквизиты для ручного банковского перевода
type BankDetails struct {
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
}

// DepositInstructions возвращается пользователю после запроса депозита
type DepositInstructions struct {
	Transaction *domain.Transaction `json:"transaction"`
	Bank        BankDetails         `json:"bank"`
}

// DepositService реализует ручной депозитный workflow: запрос, загрузка
// подтверждения перевода и решение администратора с реферальным каскадом.
type DepositService struct {
	txRepo      domain.TransactionRepository
	userRepo    domain.UserRepository
	notifier    domain.Notifier
	bank        BankDetails
	depositMin  float64
	depositMax  float64
	equityValue int64
	referralPct int64
	logger      *zap.Logger
}

// NewDepositService создает новый DepositService
func NewDepositService(
	txRepo domain.TransactionRepository,
	userRepo domain.UserRepository,
	notifier domain.Notifier,
	bank BankDetails,
	depositMin, depositMax float64,
	equityValue, referralPct int64,
	logger *zap.Logger,
) *DepositService {
	return &DepositService{
		txRepo:      txRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		bank:        bank,
		depositMin:  depositMin,
		depositMax:  depositMax,
		equityValue: equityValue,
		referralPct: referralPct,
		logger:      logger,
	}
}

// Request создает pending депозит и возвращает реквизиты для перевода.
// Платежный шлюз не вызывается: перевод делается вручную и подтверждается
// администратором.
func (s *DepositService) Request(ctx context.Context, userID int64, amount float64) (*DepositInstructions, error) {
	if amount < s.depositMin || amount > s.depositMax {
		return nil, fmt.Errorf("%w: amount must be between %.0f and %.0f", domain.ErrInvalidAmount, s.depositMin, s.depositMax)
	}

	tx := &domain.Transaction{
		TransactionID: ident.TransactionID(),
		UserID:        userID,
		Type:          domain.TransactionTypeDeposit,
		Amount:        amount,
		Equities:      pricing.DepositEquities(amount, s.equityValue),
		Status:        domain.TransactionStatusPending,
		Reference:     ident.Reference(),
	}

	if err := s.txRepo.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("deposit service: failed to create deposit for user %d: %w", userID, err)
	}

	return &DepositInstructions{Transaction: tx, Bank: s.bank}, nil
}

// AttachProof прикрепляет подтверждение перевода к pending депозиту.
// Статус не меняется: депозит все еще ждет решения администратора.
func (s *DepositService) AttachProof(ctx context.Context, transactionID string, userID int64, proofImage, senderName, senderAccount, transferDate string) error {
	if proofImage == "" {
		return fmt.Errorf("%w: proof image is required", ErrInvalidInput)
	}

	err := s.txRepo.AttachProof(ctx, transactionID, userID, proofImage, senderName, senderAccount, transferDate)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return err
		}
		return fmt.Errorf("deposit service: failed to attach proof to %q: %w", transactionID, err)
	}

	s.notifier.AlertAdmin(ctx, fmt.Sprintf("New deposit proof: %s (user %d)", transactionID, userID))

	return nil
}

// Approve подтверждает pending депозит и зачисляет эквити.
// Поиск фильтрует по статусу pending: повторное подтверждение ничего
// не находит и возвращает "not found" — защита от двойного зачисления.
func (s *DepositService) Approve(ctx context.Context, transactionID, verifiedBy string) error {
	deposit, err := s.txRepo.GetPendingDeposit(ctx, transactionID)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return err
		}
		return fmt.Errorf("deposit service: failed to get deposit %q: %w", transactionID, err)
	}

	if err := s.txRepo.ResolveDeposit(ctx, transactionID, domain.TransactionStatusCompleted, verifiedBy, ""); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return err
		}
		return fmt.Errorf("deposit service: failed to resolve deposit %q: %w", transactionID, err)
	}

	if err := s.userRepo.AdjustBalance(ctx, deposit.UserID, deposit.Equities); err != nil {
		return fmt.Errorf("deposit service: failed to credit user %d for deposit %q: %w", deposit.UserID, transactionID, err)
	}

	s.notifier.Notify(ctx, deposit.UserID, "deposit", "Deposit approved",
		fmt.Sprintf("%d equities have been credited to your balance.", deposit.Equities))

	s.creditReferrer(ctx, deposit)

	return nil
}

// creditReferrer начисляет реферальный бонус, если вкладчик пришел по коду.
// Каскад срабатывает ровно один раз на подтвержденный депозит; сбой
// каскада логируется, но не откатывает само зачисление.
func (s *DepositService) creditReferrer(ctx context.Context, deposit *domain.Transaction) {
	user, err := s.userRepo.GetUserByID(ctx, deposit.UserID)
	if err != nil {
		s.logger.Error("referral cascade: failed to get depositor",
			zap.Int64("user_id", deposit.UserID),
			zap.Error(err))
		return
	}
	if user.ReferredBy == "" {
		return
	}

	referrer, err := s.userRepo.GetUserByReferralCode(ctx, user.ReferredBy)
	if err != nil {
		// Висячий код при регистрации: бонус просто не начисляется
		if errors.Is(err, domain.ErrUserNotFound) {
			return
		}
		s.logger.Error("referral cascade: failed to look up referrer",
			zap.String("code", user.ReferredBy),
			zap.Error(err))
		return
	}

	bonus := pricing.ReferralBonus(deposit.Equities, s.referralPct)
	if bonus <= 0 {
		return
	}

	if err := s.userRepo.CreditReferral(ctx, referrer.ID, bonus); err != nil {
		s.logger.Error("referral cascade: failed to credit referrer",
			zap.Int64("referrer_id", referrer.ID),
			zap.Error(err))
		return
	}

	tx := &domain.Transaction{
		TransactionID: ident.TransactionID(),
		UserID:        referrer.ID,
		Type:          domain.TransactionTypeReferral,
		Amount:        float64(bonus * s.equityValue),
		Equities:      bonus,
		Status:        domain.TransactionStatusCompleted,
		Reference:     deposit.TransactionID,
	}
	if err := s.txRepo.CreateTransaction(ctx, tx); err != nil {
		s.logger.Error("referral cascade: failed to record bonus transaction",
			zap.Int64("referrer_id", referrer.ID),
			zap.Error(err))
		return
	}

	s.notifier.Notify(ctx, referrer.ID, "referral", "Referral bonus",
		fmt.Sprintf("You earned %d equities from a referral deposit.", bonus))
}

// Reject отклоняет pending депозит. Баланс не трогается: он не зачислялся.
func (s *DepositService) Reject(ctx context.Context, transactionID, verifiedBy, reason string) error {
	deposit, err := s.txRepo.GetPendingDeposit(ctx, transactionID)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return err
		}
		return fmt.Errorf("deposit service: failed to get deposit %q: %w", transactionID, err)
	}

	if err := s.txRepo.ResolveDeposit(ctx, transactionID, domain.TransactionStatusCancelled, verifiedBy, reason); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return err
		}
		return fmt.Errorf("deposit service: failed to resolve deposit %q: %w", transactionID, err)
	}

	s.notifier.Notify(ctx, deposit.UserID, "deposit", "Deposit rejected",
		fmt.Sprintf("Your deposit %s was rejected: %s", transactionID, reason))

	return nil
}

// ListPending возвращает страницу депозитов, ожидающих решения
func (s *DepositService) ListPending(ctx context.Context, page, limit int64) ([]*domain.Transaction, int64, error) {
	deposits, total, err := s.txRepo.ListPendingDeposits(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("deposit service: failed to list pending deposits: %w", err)
	}
	return deposits, total, nil
}

// ListMine возвращает страницу транзакций пользователя
func (s *DepositService) ListMine(ctx context.Context, userID, page, limit int64) ([]*domain.Transaction, int64, error) {
	transactions, total, err := s.txRepo.GetTransactionsByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("deposit service: failed to list transactions for user %d: %w", userID, err)
	}
	return transactions, total, nil
}

// ListAll возвращает страницу всех транзакций для панели администратора
func (s *DepositService) ListAll(ctx context.Context, page, limit int64) ([]*domain.Transaction, int64, error) {
	transactions, total, err := s.txRepo.ListTransactions(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("deposit service: failed to list transactions: %w", err)
	}
	return transactions, total, nil
}
