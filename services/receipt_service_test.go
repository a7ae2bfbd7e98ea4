package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadMilon/FruitPanda-sub001/lib"
	"github.com/muhammadMilon/FruitPanda-sub001/structs/tables"
)

func TestGenerateForOrder_CreatesSnapshot(t *testing.T) {
	env := newTestEnv()
	claims := customerClaims()
	order := paidOrder(env, claims, adminClaims(), "500.00")

	receipt, err := env.receipts.GetByOrderID(context.Background(), order.Id)
	require.NoError(t, err)

	expectedNumber := fmt.Sprintf("RCP-%s-0001", time.Now().Format("20060102"))
	assert.Equal(t, expectedNumber, receipt.ReceiptNumber)
	assert.Equal(t, order.OrderNumber, receipt.OrderNumber)
	assert.Equal(t, claims.Sub, receipt.CustomerId)
	assert.True(t, receipt.Pricing.Total.Equal(order.Pricing.Total))
	assert.Equal(t, tables.ReceiptStatusGenerated, receipt.Status)
	assert.Equal(t, 0, receipt.DownloadCount)
	assert.NotEmpty(t, receipt.PdfPath)
	assert.NotEmpty(t, receipt.PdfUrl)
}

func TestGenerateForOrder_Idempotent(t *testing.T) {
	env := newTestEnv()
	order := paidOrder(env, customerClaims(), adminClaims(), "500.00")

	first, created, err := env.receiptService.GenerateForOrder(context.Background(), order)
	require.NoError(t, err)
	assert.False(t, created, "receipt already exists from confirmation")

	second, created, err := env.receiptService.GenerateForOrder(context.Background(), order)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ReceiptNumber, second.ReceiptNumber)
	assert.Len(t, env.receipts.byID, 1)
}

func TestGenerateForOrder_RequiresPaidOrder(t *testing.T) {
	env := newTestEnv()
	order := placedOrder(env, customerClaims(), "500.00")

	_, _, err := env.receiptService.GenerateForOrder(context.Background(), order)
	require.ErrorIs(t, err, lib.ErrInvalidState)
}

func TestGenerateForOrder_DailySequenceIncrements(t *testing.T) {
	env := newTestEnv()
	claims := customerClaims()
	admin := adminClaims()

	paidOrder(env, claims, admin, "100.00")
	second := paidOrder(env, claims, admin, "200.00")

	receipt, err := env.receipts.GetByOrderID(context.Background(), second.Id)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("RCP-%s-0002", time.Now().Format("20060102")), receipt.ReceiptNumber)
}

func TestGenerateForOrder_PDFContainsMagicBytes(t *testing.T) {
	env := newTestEnv()
	order := paidOrder(env, customerClaims(), adminClaims(), "500.00")

	receipt, err := env.receipts.GetByOrderID(context.Background(), order.Id)
	require.NoError(t, err)

	data, ok := env.files.files[receipt.PdfPath]
	require.True(t, ok, "PDF should be stored")
	assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF")
}

func TestGenerateForOrder_StorageFailureDoesNotBlock(t *testing.T) {
	env := newTestEnv()
	env.files.saveErr = errors.New("disk full")

	order := paidOrder(env, customerClaims(), adminClaims(), "500.00")

	receipt, err := env.receipts.GetByOrderID(context.Background(), order.Id)
	require.NoError(t, err, "the receipt record survives a failed PDF write")
	assert.Empty(t, receipt.PdfPath)
}

func TestGenerateForOrder_RepairsMissingPDF(t *testing.T) {
	env := newTestEnv()
	env.files.saveErr = errors.New("disk full")
	order := paidOrder(env, customerClaims(), adminClaims(), "500.00")

	env.files.saveErr = nil
	receipt, created, err := env.receiptService.GenerateForOrder(context.Background(), order)
	require.NoError(t, err)

	assert.False(t, created)
	assert.NotEmpty(t, receipt.PdfPath)
}

func TestDownload_OwnerGetsPDFAndCountIncrements(t *testing.T) {
	env := newTestEnv()
	claims := customerClaims()
	order := paidOrder(env, claims, adminClaims(), "500.00")
	receipt, _ := env.receipts.GetByOrderID(context.Background(), order.Id)

	result, err := env.receiptService.Download(context.Background(), claims, receipt.Id)
	require.NoError(t, err)
	defer result.Reader.Close()

	data, err := io.ReadAll(result.Reader)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, fmt.Sprintf("receipt-%s.pdf", order.OrderNumber), result.Filename)
	assert.Equal(t, 1, result.Receipt.DownloadCount)
	assert.Equal(t, tables.ReceiptStatusDownloaded, result.Receipt.Status)

	again, err := env.receiptService.Download(context.Background(), claims, receipt.Id)
	require.NoError(t, err)
	again.Reader.Close()
	assert.Equal(t, 2, again.Receipt.DownloadCount)
}

func TestDownload_NonOwnerForbidden(t *testing.T) {
	env := newTestEnv()
	order := paidOrder(env, customerClaims(), adminClaims(), "500.00")
	receipt, _ := env.receipts.GetByOrderID(context.Background(), order.Id)

	_, err := env.receiptService.Download(context.Background(), customerClaims(), receipt.Id)
	require.ErrorIs(t, err, lib.ErrForbidden)
	assert.Equal(t, 0, receipt.DownloadCount, "a forbidden attempt must not count")
}

func TestDownload_AdminAllowed(t *testing.T) {
	env := newTestEnv()
	order := paidOrder(env, customerClaims(), adminClaims(), "500.00")
	receipt, _ := env.receipts.GetByOrderID(context.Background(), order.Id)

	result, err := env.receiptService.Download(context.Background(), adminClaims(), receipt.Id)
	require.NoError(t, err)
	result.Reader.Close()
}

func TestDownload_MissingArtifact(t *testing.T) {
	env := newTestEnv()
	env.files.saveErr = errors.New("disk full")
	claims := customerClaims()
	order := paidOrder(env, claims, adminClaims(), "500.00")
	receipt, _ := env.receipts.GetByOrderID(context.Background(), order.Id)

	_, err := env.receiptService.Download(context.Background(), claims, receipt.Id)
	require.ErrorIs(t, err, lib.ErrNotFound)
}

func TestDownloadByOrderNumber(t *testing.T) {
	env := newTestEnv()
	claims := customerClaims()
	order := paidOrder(env, claims, adminClaims(), "500.00")

	result, err := env.receiptService.DownloadByOrderNumber(context.Background(), claims, order.OrderNumber)
	require.NoError(t, err)
	result.Reader.Close()

	assert.Equal(t, order.OrderNumber, result.Receipt.OrderNumber)
}

func TestBackfill_CreatesMissingReceiptsOnly(t *testing.T) {
	env := newTestEnv()
	claims := customerClaims()
	admin := adminClaims()

	// Three paid orders; delete the receipts of two to simulate orders paid
	// before receipts existed.
	first := paidOrder(env, claims, admin, "100.00")
	second := paidOrder(env, claims, admin, "200.00")
	paidOrder(env, claims, admin, "300.00")

	for _, order := range []*tables.Order{first, second} {
		receipt, err := env.receipts.GetByOrderID(context.Background(), order.Id)
		require.NoError(t, err)
		require.NoError(t, env.receipts.Delete(context.Background(), receipt.Id))
	}

	result, err := env.receiptService.BackfillMissing(context.Background(), claims, false)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Scanned)
	assert.Equal(t, 2, result.Created)
	assert.Len(t, result.ReceiptNumbers, 2)
	assert.Len(t, env.receipts.byID, 3)
}

func TestBackfill_AllScopeRequiresAdmin(t *testing.T) {
	env := newTestEnv()

	_, err := env.receiptService.BackfillMissing(context.Background(), customerClaims(), true)
	require.ErrorIs(t, err, lib.ErrForbidden)
}

func TestBackfill_ScopedToOwnOrders(t *testing.T) {
	env := newTestEnv()
	admin := adminClaims()
	alice := customerClaims()
	bob := customerClaims()

	aliceOrder := paidOrder(env, alice, admin, "100.00")
	bobOrder := paidOrder(env, bob, admin, "200.00")
	for _, order := range []*tables.Order{aliceOrder, bobOrder} {
		receipt, err := env.receipts.GetByOrderID(context.Background(), order.Id)
		require.NoError(t, err)
		require.NoError(t, env.receipts.Delete(context.Background(), receipt.Id))
	}

	result, err := env.receiptService.BackfillMissing(context.Background(), alice, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	_, err = env.receipts.GetByOrderID(context.Background(), bobOrder.Id)
	require.ErrorIs(t, err, lib.ErrNotFound, "another customer's order stays untouched")
}

func TestDelete_RemovesRecordAndArtifact(t *testing.T) {
	env := newTestEnv()
	order := paidOrder(env, customerClaims(), adminClaims(), "500.00")
	receipt, _ := env.receipts.GetByOrderID(context.Background(), order.Id)
	pdfPath := receipt.PdfPath

	require.NoError(t, env.receiptService.Delete(context.Background(), adminClaims(), receipt.Id))

	_, err := env.receipts.GetByID(context.Background(), receipt.Id)
	require.ErrorIs(t, err, lib.ErrNotFound)
	_, stored := env.files.files[pdfPath]
	assert.False(t, stored)
}

func TestDelete_NonAdminForbidden(t *testing.T) {
	env := newTestEnv()
	claims := customerClaims()
	order := paidOrder(env, claims, adminClaims(), "500.00")
	receipt, _ := env.receipts.GetByOrderID(context.Background(), order.Id)

	err := env.receiptService.Delete(context.Background(), claims, receipt.Id)
	require.ErrorIs(t, err, lib.ErrForbidden)
}

func TestListForCustomer_SummariesAndCaching(t *testing.T) {
	env := newTestEnv()
	claims := customerClaims()
	admin := adminClaims()
	paidOrder(env, claims, admin, "100.00")
	paidOrder(env, claims, admin, "1200.00")

	receipts, pagination, err := env.receiptService.ListForCustomer(context.Background(), claims, 1, 10)
	require.NoError(t, err)
	assert.Len(t, receipts, 2)
	assert.Equal(t, 2, pagination.Total)

	// Second read is served from the cache.
	cached, _, err := env.receiptService.ListForCustomer(context.Background(), claims, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, receipts, cached)

	key := fmt.Sprintf("receipts:%s:1:10", claims.Sub)
	stored, _ := env.cache.Get(key)
	assert.NotEmpty(t, stored)
}

func TestListForCustomer_OnlyOwnReceipts(t *testing.T) {
	env := newTestEnv()
	admin := adminClaims()
	alice := customerClaims()
	bob := customerClaims()
	paidOrder(env, alice, admin, "100.00")
	paidOrder(env, bob, admin, "200.00")

	receipts, _, err := env.receiptService.ListForCustomer(context.Background(), alice, 1, 10)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
}

func TestGenerateForOrderID_AdminOnly(t *testing.T) {
	env := newTestEnv()
	claims := customerClaims()
	order := paidOrder(env, claims, adminClaims(), "500.00")

	_, err := env.receiptService.GenerateForOrderID(context.Background(), claims, order.Id)
	require.ErrorIs(t, err, lib.ErrForbidden)

	receipt, err := env.receiptService.GenerateForOrderID(context.Background(), adminClaims(), order.Id)
	require.NoError(t, err)
	assert.Equal(t, order.Id, receipt.OrderId)
}
